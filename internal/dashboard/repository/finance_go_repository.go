package repository

import (
	"context"
	"fmt"
	"time"

	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

type financeGoRepository struct {
	log *logger.Logger
	now func() time.Time
}

// NewFinanceGoRepository creates a PriceHistoryRepository using the finance-go chart iterator.
func NewFinanceGoRepository(log *logger.Logger) PriceHistoryRepository {
	return &financeGoRepository{log: log, now: time.Now}
}

type chartOutcome struct {
	points []entity.PricePoint
	err    error
}

// GetPriceSeries runs the iterator in its own goroutine. A cancelled ctx
// abandons the iterator; it finishes in the background.
func (r *financeGoRepository) GetPriceSeries(ctx context.Context, symbol string, lookback entity.Lookback, interval entity.Interval) (*entity.PriceSeries, error) {
	end := r.now().UTC()
	start := lookback.Start(end)
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	}

	done := make(chan chartOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- chartOutcome{err: fmt.Errorf("chart iterator panic: %v", rec)}
			}
		}()

		iter := chart.Get(params)
		var points []entity.PricePoint
		for iter.Next() {
			bar := iter.Bar()
			if bar == nil || bar.Close.IsZero() {
				continue
			}
			points = append(points, entity.PricePoint{
				Timestamp: time.Unix(int64(bar.Timestamp), 0).UTC(),
				Close:     bar.Close.InexactFloat64(),
			})
		}
		done <- chartOutcome{points: points, err: iter.Err()}
	}()

	select {
	case <-ctx.Done():
		r.log.WarnContext(ctx, "Chart request abandoned", logger.StringField("symbol", symbol), logger.ErrorField(ctx.Err()))
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, out.err)
		}
		return &entity.PriceSeries{
			Symbol:   symbol,
			Lookback: lookback,
			Interval: interval,
			Points:   out.points,
		}, nil
	}
}
