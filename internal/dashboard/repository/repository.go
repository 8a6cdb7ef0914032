package repository

import (
	"context"

	"golang-market-briefing/internal/entity"
)

// PriceHistoryRepository returns closing-price history for one symbol.
type PriceHistoryRepository interface {
	GetPriceSeries(ctx context.Context, symbol string, lookback entity.Lookback, interval entity.Interval) (*entity.PriceSeries, error)
}

// CompletionRepository sends a single text completion request.
type CompletionRepository interface {
	GenerateContent(ctx context.Context, credential, modelID, prompt string) (string, error)
}

// ModelCatalogRepository reads model metadata for a credential.
type ModelCatalogRepository interface {
	ListModels(ctx context.Context, credential string) ([]entity.ModelDescriptor, error)
	GetModel(ctx context.Context, credential, modelID string) (*entity.ModelDescriptor, error)
	CountTokens(ctx context.Context, credential, modelID, prompt string) (int, error)
}

// NewsRepository fetches headlines for a search query.
type NewsRepository interface {
	GetHeadlines(ctx context.Context, query string, limit int) ([]entity.NewsItem, error)
}

// ArticleRepository extracts the readable text of an article.
type ArticleRepository interface {
	GetExcerpt(ctx context.Context, link string, maxChars int) (string, error)
}

// BriefingRepository stores generated reports.
type BriefingRepository interface {
	Create(ctx context.Context, briefing *entity.Briefing) error
	List(ctx context.Context, limit int) ([]entity.Briefing, error)
}
