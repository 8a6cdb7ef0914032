package entity

import (
	"fmt"
	"time"
)

// Lookback is the span of history requested for a price series.
type Lookback string

const (
	Lookback1d  Lookback = "1d"
	Lookback5d  Lookback = "5d"
	Lookback1mo Lookback = "1mo"
	Lookback3mo Lookback = "3mo"
	Lookback6mo Lookback = "6mo"
	Lookback1y  Lookback = "1y"
	Lookback2y  Lookback = "2y"
	Lookback3y  Lookback = "3y"
	Lookback5y  Lookback = "5y"
)

var lookbackSpans = map[Lookback]struct {
	years, months, days int
	native              bool
}{
	Lookback1d:  {0, 0, 1, true},
	Lookback5d:  {0, 0, 5, true},
	Lookback1mo: {0, 1, 0, true},
	Lookback3mo: {0, 3, 0, true},
	Lookback6mo: {0, 6, 0, true},
	Lookback1y:  {1, 0, 0, true},
	Lookback2y:  {2, 0, 0, true},
	Lookback3y:  {3, 0, 0, false},
	Lookback5y:  {5, 0, 0, true},
}

// ParseLookback validates s as a Lookback.
func ParseLookback(s string) (Lookback, error) {
	l := Lookback(s)
	if _, ok := lookbackSpans[l]; !ok {
		return "", fmt.Errorf("unsupported lookback window %q", s)
	}
	return l, nil
}

// Native reports whether the provider accepts the window as a range keyword.
// Other windows are requested with explicit start/end bounds.
func (l Lookback) Native() bool {
	return lookbackSpans[l].native
}

// Start returns the beginning of the window ending at end.
func (l Lookback) Start(end time.Time) time.Time {
	span := lookbackSpans[l]
	return end.AddDate(-span.years, -span.months, -span.days)
}

// Interval is the spacing between samples.
type Interval string

const (
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval60m Interval = "60m"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

// ParseInterval validates s as an Interval.
func ParseInterval(s string) (Interval, error) {
	switch i := Interval(s); i {
	case Interval5m, Interval15m, Interval30m, Interval60m, Interval1d, Interval1wk, Interval1mo:
		return i, nil
	}
	return "", fmt.Errorf("unsupported sampling interval %q", s)
}

// PricePoint is one closing-price sample.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
}

// PriceSeries is a time-ordered run of samples for one symbol.
type PriceSeries struct {
	Symbol   string       `json:"symbol"`
	Lookback Lookback     `json:"lookback"`
	Interval Interval     `json:"interval"`
	Points   []PricePoint `json:"points"`
}

// Closes returns the closing prices in order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
