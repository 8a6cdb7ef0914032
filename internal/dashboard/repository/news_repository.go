package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/common"
	"golang-market-briefing/pkg/logger"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

type newsRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	parser *gofeed.Parser
}

// NewNewsRepository creates a NewsRepository reading an RSS search feed.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: cfg.News.Timeout}
	fp.UserAgent = common.DefaultUserAgent
	fp.RSSTranslator = &publisherTranslator{}
	return &newsRepository{
		cfg:    cfg,
		logger: log,
		parser: fp,
	}
}

// GetHeadlines returns at most limit items, newest first.
func (r *newsRepository) GetHeadlines(ctx context.Context, query string, limit int) ([]entity.NewsItem, error) {
	feedURL := r.cfg.News.FeedURL
	if strings.Contains(feedURL, "%s") {
		feedURL = fmt.Sprintf(feedURL, url.QueryEscape(query))
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	items := make([]entity.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		items = append(items, toNewsItem(item))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func toNewsItem(item *gofeed.Item) entity.NewsItem {
	title := strings.TrimSpace(item.Title)
	publisher := item.Custom["source"]

	// Aggregated feeds append the publisher to the title as "Headline - Publisher".
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		suffix := strings.TrimSpace(title[idx+3:])
		if publisher == "" || strings.EqualFold(suffix, publisher) {
			publisher = suffix
			title = strings.TrimSpace(title[:idx])
		}
	}
	if publisher == "" {
		if u, err := url.Parse(item.Link); err == nil {
			publisher = strings.TrimPrefix(u.Hostname(), "www.")
		}
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.UTC()
	}

	return entity.NewsItem{
		Title:       title,
		Link:        item.Link,
		Publisher:   publisher,
		PublishedAt: published,
	}
}

// publisherTranslator keeps the RSS <source> element, which the default
// translator drops, as Custom["source"].
type publisherTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *publisherTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return out, nil
	}
	for i, item := range rssFeed.Items {
		if i >= len(out.Items) || item.Source == nil || item.Source.Title == "" {
			continue
		}
		if out.Items[i].Custom == nil {
			out.Items[i].Custom = map[string]string{}
		}
		out.Items[i].Custom["source"] = strings.TrimSpace(item.Source.Title)
	}
	return out, nil
}
