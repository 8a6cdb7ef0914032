package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/pkg/common"
	"golang-market-briefing/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

type articleRepository struct {
	client *http.Client
	logger *logger.Logger
}

// NewArticleRepository creates an ArticleRepository that extracts the main
// text of a page with readability.
func NewArticleRepository(cfg *config.Config, log *logger.Logger) ArticleRepository {
	return &articleRepository{
		client: &http.Client{Timeout: cfg.News.Timeout},
		logger: log,
	}
}

func (r *articleRepository) GetExcerpt(ctx context.Context, link string, maxChars int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", common.DefaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to fetch article", logger.ErrorField(err), logger.StringField("url", link))
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}
	htmlDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}

	return clip(strings.Join(strings.Fields(htmlDoc.Text()), " "), maxChars), nil
}

// clip shortens s to at most n runes, cutting at a word boundary when one is near.
func clip(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
