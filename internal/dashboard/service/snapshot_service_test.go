package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/cache"
	"golang-market-briefing/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() entity.TickerSpec {
	return entity.TickerSpec{
		{Label: "S&P 500", Symbol: "^GSPC"},
		{Label: "Broken", Symbol: "BAD"},
		{Label: "Gold", Symbol: "GC=F"},
		{Label: "Thin", Symbol: "THIN"},
		{Label: "Zero", Symbol: "ZERO"},
	}
}

func newTestSnapshotService(repo *fakePriceRepo, c cache.Cache) SnapshotService {
	cfg := newTestConfig()
	cfg.Snapshot.MaxConcurrentFetches = 3
	return NewSnapshotService(cfg, logger.NewNop(), repo, c)
}

func TestBuildSnapshot_OneRecordPerTickerInOrder(t *testing.T) {
	repo := newFakePriceRepo()
	repo.series["^GSPC"] = []float64{4900, 5000, 5100}
	repo.series["GC=F"] = []float64{2400, 2376}
	repo.series["THIN"] = []float64{10}
	repo.series["ZERO"] = []float64{0, 12}
	repo.errs["BAD"] = errors.New("HTTP 404")

	svc := newTestSnapshotService(repo, cache.NewNoop())
	spec := testSpec()

	records := svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	require.Len(t, records, len(spec))
	for i, r := range records {
		assert.Equal(t, spec[i].Label, r.Label)
		assert.Equal(t, spec[i].Symbol, r.Symbol)
	}

	assert.True(t, records[0].Available())
	assert.Equal(t, 5100.0, records[0].Price)
	assert.InDelta(t, 2.0, records[0].PercentChange, 1e-9)
	assert.Equal(t, 4900.0, records[0].Low)
	assert.Equal(t, 5100.0, records[0].High)

	assert.False(t, records[1].Available())
	assert.Equal(t, 0.0, records[1].Price)
	assert.Equal(t, 0.0, records[1].PercentChange)
	assert.Contains(t, records[1].Error, "404")

	assert.True(t, records[2].Available())
	assert.InDelta(t, -1.0, records[2].PercentChange, 1e-9)

	// fewer than two samples
	assert.Equal(t, entity.QuoteStatusUnavailable, records[3].Status)
	assert.Equal(t, 0.0, records[3].PercentChange)
	assert.Contains(t, records[3].Error, ErrInsufficientData.Error())

	// zero reference
	assert.True(t, records[4].Available())
	assert.Equal(t, 12.0, records[4].Price)
	assert.Equal(t, 0.0, records[4].PercentChange)
}

func TestBuildSnapshot_PanickingProviderIsIsolated(t *testing.T) {
	repo := newFakePriceRepo()
	repo.series["^GSPC"] = []float64{1, 2}
	repo.panics["BAD"] = true

	svc := newTestSnapshotService(repo, nil)
	spec := entity.TickerSpec{{Label: "S&P 500", Symbol: "^GSPC"}, {Label: "Broken", Symbol: "BAD"}}

	records := svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	require.Len(t, records, 2)
	assert.True(t, records[0].Available())
	assert.False(t, records[1].Available())
	assert.Contains(t, records[1].Error, "panic")
}

func TestBuildSnapshot_PeriodMode(t *testing.T) {
	repo := newFakePriceRepo()
	repo.series["AAPL"] = []float64{100, 150, 120}
	spec := entity.TickerSpec{{Label: "Apple", Symbol: "AAPL"}}

	svc := newTestSnapshotService(repo, nil)
	assert.Equal(t, entity.ChangeModeDaily, svc.ChangeMode())

	daily := svc.BuildSnapshot(context.Background(), spec, entity.Lookback1mo, entity.Interval1d)
	assert.InDelta(t, -20.0, daily[0].PercentChange, 1e-9)

	period := svc.WithChangeMode(entity.ChangeModePeriod).BuildSnapshot(context.Background(), spec, entity.Lookback1mo, entity.Interval1d)
	assert.InDelta(t, 20.0, period[0].PercentChange, 1e-9)
}

func TestBuildSnapshot_CachesWithinTTL(t *testing.T) {
	repo := newFakePriceRepo()
	repo.series["^GSPC"] = []float64{4900, 5000}
	repo.series["GC=F"] = []float64{2400, 2410}

	cfg := newTestConfig()
	cfg.Snapshot.CacheTTL = 80 * time.Millisecond
	svc := NewSnapshotService(cfg, logger.NewNop(), repo, cache.NewMemory(time.Minute))
	spec := entity.TickerSpec{{Label: "S&P 500", Symbol: "^GSPC"}, {Label: "Gold", Symbol: "GC=F"}}

	first := svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	second := svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.callCount("^GSPC"))
	assert.Equal(t, 1, repo.callCount("GC=F"))

	// a different window is a different entry
	svc.BuildSnapshot(context.Background(), spec, entity.Lookback1mo, entity.Interval1d)
	assert.Equal(t, 2, repo.callCount("^GSPC"))

	time.Sleep(150 * time.Millisecond)
	svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	assert.Equal(t, 3, repo.callCount("^GSPC"))
	assert.Equal(t, 3, repo.callCount("GC=F"))
}

func TestBuildSnapshot_AllUnavailableIsNotCached(t *testing.T) {
	repo := newFakePriceRepo()
	svc := newTestSnapshotService(repo, cache.NewMemory(time.Minute))
	spec := entity.TickerSpec{{Label: "Broken", Symbol: "BAD"}}

	svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	svc.BuildSnapshot(context.Background(), spec, entity.Lookback5d, entity.Interval1d)
	assert.Equal(t, 2, repo.callCount("BAD"))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentChange(110, 100), 1e-9)
	assert.Equal(t, 0.0, PercentChange(110, 0))
	assert.Equal(t, 0.0, PercentChange(math.NaN(), 100))
	assert.Equal(t, 0.0, PercentChange(math.Inf(1), 100))
}

func TestSnapshotCacheKey(t *testing.T) {
	spec := entity.TickerSpec{{Label: "A", Symbol: "a"}, {Label: "B", Symbol: "b"}}
	reversed := entity.TickerSpec{spec[1], spec[0]}

	k1 := snapshotCacheKey(spec, entity.Lookback5d, entity.Interval1d, entity.ChangeModeDaily)
	assert.True(t, strings.HasPrefix(k1, "market_snapshot:"))
	assert.Equal(t, k1, snapshotCacheKey(spec, entity.Lookback5d, entity.Interval1d, entity.ChangeModeDaily))
	assert.NotEqual(t, k1, snapshotCacheKey(reversed, entity.Lookback5d, entity.Interval1d, entity.ChangeModeDaily))
	assert.NotEqual(t, k1, snapshotCacheKey(spec, entity.Lookback5d, entity.Interval1wk, entity.ChangeModeDaily))
	assert.NotEqual(t, k1, snapshotCacheKey(spec, entity.Lookback5d, entity.Interval1d, entity.ChangeModePeriod))
}

func TestFormatSnapshotTable(t *testing.T) {
	table := FormatSnapshotTable([]entity.QuoteRecord{
		{Label: "S&P 500", Price: 5123.456, PercentChange: 1.2345, Status: entity.QuoteStatusOK},
		{Label: "Oil", Status: entity.QuoteStatusUnavailable},
		{Label: "USD/KRW", Price: 1380, PercentChange: -0.5, Status: entity.QuoteStatusOK},
	})

	lines := strings.Split(table, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Item")
	assert.Contains(t, lines[1], "5,123.46")
	assert.Contains(t, lines[1], "+1.23%")
	assert.Contains(t, lines[2], "Oil")
	assert.Contains(t, lines[2], "n/a")
	assert.Contains(t, lines[3], "1,380.00")
	assert.Contains(t, lines[3], "-0.50%")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0.50", formatPrice(0.5))
	assert.Equal(t, "999.00", formatPrice(999))
	assert.Equal(t, "1,000.00", formatPrice(1000))
	assert.Equal(t, "-12,345,678.90", formatPrice(-12345678.9))
}
