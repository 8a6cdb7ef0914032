package entity

import "fmt"

// QuoteStatus tells whether a QuoteRecord carries real numbers.
type QuoteStatus string

const (
	QuoteStatusOK          QuoteStatus = "ok"
	QuoteStatusUnavailable QuoteStatus = "unavailable"
)

// ChangeMode selects the reference sample for the percent change.
type ChangeMode string

const (
	// ChangeModeDaily compares the last sample with the one before it.
	ChangeModeDaily ChangeMode = "daily"
	// ChangeModePeriod compares the last sample with the first in the window.
	ChangeModePeriod ChangeMode = "period"
)

// ParseChangeMode validates s as a ChangeMode.
func ParseChangeMode(s string) (ChangeMode, error) {
	switch m := ChangeMode(s); m {
	case ChangeModeDaily, ChangeModePeriod:
		return m, nil
	}
	return "", fmt.Errorf("unsupported change mode %q", s)
}

// QuoteRecord is one row of a market snapshot. Unavailable rows keep Price and
// PercentChange at 0 and explain themselves in Error.
type QuoteRecord struct {
	Label         string      `json:"label"`
	Symbol        string      `json:"symbol"`
	Price         float64     `json:"price"`
	PercentChange float64     `json:"percent_change"`
	Status        QuoteStatus `json:"status"`
	Error         string      `json:"error,omitempty"`
	Low           float64     `json:"low,omitempty"`
	High          float64     `json:"high,omitempty"`
	Closes        []float64   `json:"closes,omitempty"`
}

// Available reports whether the record holds provider data.
func (q QuoteRecord) Available() bool {
	return q.Status == QuoteStatusOK
}

// UnavailableQuote builds the degraded record for a ticker.
func UnavailableQuote(t Ticker, reason error) QuoteRecord {
	rec := QuoteRecord{
		Label:  t.Label,
		Symbol: t.Symbol,
		Status: QuoteStatusUnavailable,
	}
	if reason != nil {
		rec.Error = reason.Error()
	}
	return rec
}
