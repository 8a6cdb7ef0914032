package service

import (
	"context"
	"errors"
	"sync"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/entity"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

type fakePriceRepo struct {
	mu     sync.Mutex
	calls  map[string]int
	series map[string][]float64
	errs   map[string]error
	panics map[string]bool
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{
		calls:  map[string]int{},
		series: map[string][]float64{},
		errs:   map[string]error{},
		panics: map[string]bool{},
	}
}

func (f *fakePriceRepo) GetPriceSeries(_ context.Context, symbol string, lookback entity.Lookback, interval entity.Interval) (*entity.PriceSeries, error) {
	f.mu.Lock()
	f.calls[symbol]++
	closes, ok := f.series[symbol]
	err := f.errs[symbol]
	panics := f.panics[symbol]
	f.mu.Unlock()

	if panics {
		panic("provider exploded")
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no data found, symbol may be delisted")
	}
	series := &entity.PriceSeries{Symbol: symbol, Lookback: lookback, Interval: interval}
	for _, c := range closes {
		series.Points = append(series.Points, entity.PricePoint{Close: c})
	}
	return series, nil
}

func (f *fakePriceRepo) callCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

type fakeCatalog struct {
	mu         sync.Mutex
	models     []entity.ModelDescriptor
	listErr    error
	listCalls  int
	getCalls   []string
	countCalls int
}

func (f *fakeCatalog) ListModels(context.Context, string) ([]entity.ModelDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.ModelDescriptor(nil), f.models...), nil
}

func (f *fakeCatalog) GetModel(_ context.Context, _ string, modelID string) (*entity.ModelDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, modelID)
	for _, m := range f.models {
		if m.ID == modelID {
			m := m
			return &m, nil
		}
	}
	return nil, errors.New("model not found")
}

func (f *fakeCatalog) CountTokens(context.Context, string, string, string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return 100, nil
}

type fakeCompletion struct {
	mu      sync.Mutex
	calls   int
	models  []string
	prompts []string
	text    string
	err     error
}

func (f *fakeCompletion) GenerateContent(_ context.Context, _ string, modelID, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.models = append(f.models, modelID)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
