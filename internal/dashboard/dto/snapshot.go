package dto

import (
	"time"

	"golang-market-briefing/internal/entity"
)

// SnapshotRequest carries the optional query overrides of GET /snapshot.
type SnapshotRequest struct {
	Lookback   string `query:"range"`
	Interval   string `query:"interval"`
	ChangeMode string `query:"mode"`
}

// SnapshotResponse is the body of GET /snapshot.
type SnapshotResponse struct {
	Lookback    string               `json:"lookback"`
	Interval    string               `json:"interval"`
	ChangeMode  string               `json:"change_mode"`
	GeneratedAt time.Time            `json:"generated_at"`
	Quotes      []entity.QuoteRecord `json:"quotes"`
}

// CreateBriefingRequest is the optional body of POST /briefings.
type CreateBriefingRequest struct {
	Lookback         string `json:"range"`
	Interval         string `json:"interval"`
	ChangeMode       string `json:"mode"`
	IncludeHeadlines *bool  `json:"include_headlines"`
}

// BriefingResponse is the body of POST /briefings.
type BriefingResponse struct {
	Briefing  entity.BriefingResult `json:"briefing"`
	Snapshot  []entity.QuoteRecord  `json:"snapshot"`
	Headlines []entity.NewsItem     `json:"headlines,omitempty"`
}

// BriefingListResponse is the body of GET /briefings.
type BriefingListResponse struct {
	Briefings []entity.Briefing `json:"briefings"`
}

// NewsRequest carries the query parameters of GET /news.
type NewsRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit"`
}

// NewsResponse is the body of GET /news.
type NewsResponse struct {
	Query string            `json:"query"`
	Items []entity.NewsItem `json:"items"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
