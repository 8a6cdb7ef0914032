package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/cache"
	"golang-market-briefing/pkg/common"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/utils"

	"github.com/montanaflynn/stats"
)

// ErrInsufficientData marks a series too short to derive a change from.
var ErrInsufficientData = errors.New("insufficient price data")

// SnapshotService builds quote snapshots for a ticker table.
type SnapshotService interface {
	// BuildSnapshot returns exactly one record per ticker, in ticker order.
	// Per-symbol failures become unavailable records; the call itself never fails.
	BuildSnapshot(ctx context.Context, spec entity.TickerSpec, lookback entity.Lookback, interval entity.Interval) []entity.QuoteRecord
	// WithChangeMode returns a service sharing the same provider and cache
	// that derives percent change with mode.
	WithChangeMode(mode entity.ChangeMode) SnapshotService
	ChangeMode() entity.ChangeMode
}

type snapshotService struct {
	repo         repository.PriceHistoryRepository
	cache        cache.Cache
	logger       *logger.Logger
	mode         entity.ChangeMode
	ttl          time.Duration
	workers      int
	fetchTimeout time.Duration
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(cfg *config.Config, log *logger.Logger, repo repository.PriceHistoryRepository, c cache.Cache) SnapshotService {
	mode, err := entity.ParseChangeMode(cfg.Snapshot.ChangeMode)
	if err != nil {
		mode = entity.ChangeModeDaily
	}
	if c == nil {
		c = cache.NewNoop()
	}
	workers := cfg.Snapshot.MaxConcurrentFetches
	if workers <= 0 {
		workers = 1
	}
	return &snapshotService{
		repo:         repo,
		cache:        c,
		logger:       log,
		mode:         mode,
		ttl:          cfg.Snapshot.CacheTTL,
		workers:      workers,
		fetchTimeout: cfg.YahooFinance.Timeout,
	}
}

func (s *snapshotService) WithChangeMode(mode entity.ChangeMode) SnapshotService {
	clone := *s
	clone.mode = mode
	return &clone
}

func (s *snapshotService) ChangeMode() entity.ChangeMode {
	return s.mode
}

func (s *snapshotService) BuildSnapshot(ctx context.Context, spec entity.TickerSpec, lookback entity.Lookback, interval entity.Interval) []entity.QuoteRecord {
	key := snapshotCacheKey(spec, lookback, interval, s.mode)

	if records, ok := s.fromCache(ctx, key, len(spec)); ok {
		return records
	}

	start := time.Now()
	records := s.fetchAll(ctx, spec, lookback, interval)

	available := 0
	for _, r := range records {
		if r.Available() {
			available++
		}
	}
	s.logger.InfoContext(ctx, "Snapshot built",
		logger.IntField("tickers", len(spec)),
		logger.IntField("available", available),
		logger.StringField("lookback", string(lookback)),
		logger.StringField("interval", string(interval)),
		logger.DurationField("elapsed", time.Since(start)),
	)

	// Snapshots without any data are never cached.
	if available > 0 {
		s.toCache(ctx, key, records)
	}
	return records
}

func (s *snapshotService) fetchAll(ctx context.Context, spec entity.TickerSpec, lookback entity.Lookback, interval entity.Interval) []entity.QuoteRecord {
	records := make([]entity.QuoteRecord, len(spec))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, ticker := range spec {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ticker entity.Ticker) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = s.quote(ctx, ticker, lookback, interval)
		}(i, ticker)
	}
	wg.Wait()

	return records
}

func (s *snapshotService) quote(ctx context.Context, ticker entity.Ticker, lookback entity.Lookback, interval entity.Interval) entity.QuoteRecord {
	var record entity.QuoteRecord
	err := utils.Safe(func() error {
		fetchCtx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}

		series, err := s.repo.GetPriceSeries(fetchCtx, ticker.Symbol, lookback, interval)
		if err != nil {
			return err
		}
		record, err = BuildQuote(ticker, series, s.mode)
		return err
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Quote unavailable",
			logger.StringField("label", ticker.Label),
			logger.StringField("symbol", ticker.Symbol),
			logger.ErrorField(err),
		)
		return entity.UnavailableQuote(ticker, err)
	}
	s.logger.DebugContext(ctx, "Quote built",
		logger.StringField("symbol", ticker.Symbol),
		logger.Float64Field("price", record.Price),
		logger.Float64Field("percent_change", record.PercentChange),
	)
	return record
}

// BuildQuote derives a display record from a series. A series with fewer
// than two samples yields ErrInsufficientData.
func BuildQuote(ticker entity.Ticker, series *entity.PriceSeries, mode entity.ChangeMode) (entity.QuoteRecord, error) {
	if series == nil || len(series.Points) < 2 {
		n := 0
		if series != nil {
			n = len(series.Points)
		}
		return entity.QuoteRecord{}, fmt.Errorf("%w: %d samples", ErrInsufficientData, n)
	}

	closes := series.Closes()
	current := closes[len(closes)-1]
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return entity.QuoteRecord{}, fmt.Errorf("%w: last close is not a number", ErrInsufficientData)
	}

	reference := closes[len(closes)-2]
	if mode == entity.ChangeModePeriod {
		reference = closes[0]
	}

	record := entity.QuoteRecord{
		Label:         ticker.Label,
		Symbol:        ticker.Symbol,
		Price:         current,
		PercentChange: PercentChange(current, reference),
		Status:        entity.QuoteStatusOK,
		Closes:        closes,
	}
	if low, err := stats.Min(closes); err == nil {
		record.Low = low
	}
	if high, err := stats.Max(closes); err == nil {
		record.High = high
	}
	return record, nil
}

// PercentChange returns (current-reference)/reference*100, or 0 when the
// reference is zero or the result is not finite.
func PercentChange(current, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	change := (current - reference) / reference * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0
	}
	return change
}

func snapshotCacheKey(spec entity.TickerSpec, lookback entity.Lookback, interval entity.Interval, mode entity.ChangeMode) string {
	h := sha256.New()
	for _, t := range spec {
		fmt.Fprintf(h, "%s\x00%s\x00", t.Label, t.Symbol)
	}
	fmt.Fprintf(h, "%s|%s|%s", lookback, interval, mode)
	return common.CacheKeyPrefixSnapshot + hex.EncodeToString(h.Sum(nil))[:32]
}

func (s *snapshotService) fromCache(ctx context.Context, key string, want int) ([]entity.QuoteRecord, bool) {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read snapshot cache", logger.ErrorField(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var records []entity.QuoteRecord
	if err := json.Unmarshal(b, &records); err != nil || len(records) != want {
		s.logger.WarnContext(ctx, "Discarding unreadable snapshot cache entry", logger.StringField("key", key))
		return nil, false
	}
	s.logger.DebugContext(ctx, "Snapshot served from cache", logger.StringField("key", key))
	return records, true
}

func (s *snapshotService) toCache(ctx context.Context, key string, records []entity.QuoteRecord) {
	if s.ttl <= 0 {
		return
	}
	b, err := json.Marshal(records)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to encode snapshot for cache", logger.ErrorField(err))
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "Failed to write snapshot cache", logger.ErrorField(err))
	}
}

// FormatSnapshotTable renders records as an aligned plain-text table. This is
// the market summary handed to the briefing prompt.
func FormatSnapshotTable(records []entity.QuoteRecord) string {
	var b strings.Builder
	w := newTableWriter(&b)
	fmt.Fprintln(w, "Item\tPrice\tChange %\t")
	for _, r := range records {
		if !r.Available() {
			fmt.Fprintf(w, "%s\tn/a\tn/a\t\n", r.Label)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%+.2f%%\t\n", r.Label, formatPrice(r.Price), r.PercentChange)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
