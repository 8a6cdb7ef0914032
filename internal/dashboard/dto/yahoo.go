package dto

// YahooChartResponse is the response of the Yahoo Finance v8 chart endpoint.
type YahooChartResponse struct {
	Chart YahooChart `json:"chart"`
}

type YahooChart struct {
	Result []YahooChartResult `json:"result"`
	Error  *YahooChartError   `json:"error"`
}

type YahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type YahooChartResult struct {
	Meta       YahooChartMeta       `json:"meta"`
	Timestamp  []int64              `json:"timestamp"`
	Indicators YahooChartIndicators `json:"indicators"`
}

type YahooChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

type YahooChartIndicators struct {
	Quote []YahooChartQuote `json:"quote"`
}

// YahooChartQuote holds nullable per-sample values; nulls mark gaps such as holidays.
type YahooChartQuote struct {
	Close []*float64 `json:"close"`
}
