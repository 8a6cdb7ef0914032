package service

import (
	"context"
	"sync"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/utils"
)

// NewsService fetches headlines used as briefing context.
type NewsService interface {
	GetHeadlines(ctx context.Context, query string, limit int) ([]entity.NewsItem, error)
}

type newsService struct {
	cfg      *config.Config
	logger   *logger.Logger
	news     repository.NewsRepository
	articles repository.ArticleRepository
}

// NewNewsService creates a new NewsService. articles may be nil when excerpts are disabled.
func NewNewsService(cfg *config.Config, log *logger.Logger, news repository.NewsRepository, articles repository.ArticleRepository) NewsService {
	return &newsService{
		cfg:      cfg,
		logger:   log,
		news:     news,
		articles: articles,
	}
}

// GetHeadlines falls back to the configured query and item count when either is empty.
func (s *newsService) GetHeadlines(ctx context.Context, query string, limit int) ([]entity.NewsItem, error) {
	if query == "" {
		query = s.cfg.News.Query
	}
	if limit <= 0 {
		limit = s.cfg.News.MaxItems
	}

	items, err := s.news.GetHeadlines(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if s.cfg.News.FetchExcerpts && s.articles != nil {
		s.attachExcerpts(ctx, items)
	}
	return items, nil
}

func (s *newsService) attachExcerpts(ctx context.Context, items []entity.NewsItem) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, 4)
	for i := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(item *entity.NewsItem) {
			defer wg.Done()
			defer func() { <-sem }()
			var excerpt string
			err := utils.Safe(func() error {
				var err error
				excerpt, err = s.articles.GetExcerpt(ctx, item.Link, s.cfg.News.ExcerptMaxChars)
				return err
			})
			if err != nil {
				s.logger.DebugContext(ctx, "Excerpt unavailable", logger.StringField("url", item.Link), logger.ErrorField(err))
				return
			}
			item.Excerpt = excerpt
		}(&items[i])
	}
	wg.Wait()
}
