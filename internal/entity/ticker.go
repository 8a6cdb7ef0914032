package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ticker pairs a display label with the symbol the price provider understands.
type Ticker struct {
	Label  string `json:"label" yaml:"label"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// TickerSpec is an ordered ticker table. Order is display order.
type TickerSpec []Ticker

// NewTickerSpec validates that labels are unique and non-empty.
func NewTickerSpec(tickers ...Ticker) (TickerSpec, error) {
	spec := TickerSpec(tickers)
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks that every entry has a label and a symbol and that labels are unique.
func (s TickerSpec) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, t := range s {
		if t.Label == "" {
			return fmt.Errorf("ticker %d: empty label", i)
		}
		if t.Symbol == "" {
			return fmt.Errorf("ticker %q: empty symbol", t.Label)
		}
		if _, dup := seen[t.Label]; dup {
			return fmt.Errorf("duplicate ticker label %q", t.Label)
		}
		seen[t.Label] = struct{}{}
	}
	return nil
}

// UnmarshalYAML decodes a YAML mapping of label: symbol, keeping document order.
func (s *TickerSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: ticker table must be a mapping of label to symbol", value.Line)
	}

	spec := make(TickerSpec, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: symbol for %q must be a string", val.Line, key.Value)
		}
		spec = append(spec, Ticker{Label: key.Value, Symbol: val.Value})
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	*s = spec
	return nil
}

// DefaultTickerSpec is the built-in global market table: major indices,
// rates/FX/commodities, then each region's leading stock.
func DefaultTickerSpec() TickerSpec {
	return TickerSpec{
		{Label: "🇺🇸 S&P 500", Symbol: "^GSPC"},
		{Label: "🇯🇵 Nikkei 225", Symbol: "^N225"},
		{Label: "🇨🇳 Shanghai Composite", Symbol: "000001.SS"},
		{Label: "🇪🇺 Euro Stoxx 50", Symbol: "^STOXX50E"},
		{Label: "🇮🇳 Nifty 50", Symbol: "^NSEI"},

		{Label: "🇰🇷 USD/KRW", Symbol: "KRW=X"},
		{Label: "🇺🇸 US 10Y Treasury", Symbol: "^TNX"},
		{Label: "🥇 Gold Futures", Symbol: "GC=F"},
		{Label: "🛢️ WTI Crude", Symbol: "CL=F"},

		{Label: "🇺🇸 Apple (AAPL)", Symbol: "AAPL"},
		{Label: "🇰🇷 Samsung Electronics", Symbol: "005930.KS"},
		{Label: "🇹🇼 TSMC", Symbol: "TSM"},
		{Label: "🇯🇵 Toyota", Symbol: "7203.T"},
		{Label: "🇨🇳 Tencent (HK)", Symbol: "0700.HK"},
		{Label: "🇪🇺 LVMH", Symbol: "MC.PA"},
		{Label: "🇮🇳 Reliance", Symbol: "RELIANCE.NS"},
	}
}
