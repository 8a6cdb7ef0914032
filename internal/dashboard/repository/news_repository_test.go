package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-market-briefing/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>"global markets" - Google News</title>
<item>
  <title>Stocks slip as yields climb - Reuters</title>
  <link>https://news.example.com/a</link>
  <pubDate>Mon, 14 Oct 2024 08:00:00 GMT</pubDate>
  <source url="https://www.reuters.com">Reuters</source>
</item>
<item>
  <title>Gold hits record high</title>
  <link>https://www.ft.com/content/b</link>
  <pubDate>Mon, 14 Oct 2024 10:30:00 GMT</pubDate>
</item>
<item>
  <title>Oil steadies after OPEC+ meeting - Bloomberg.com</title>
  <link>https://news.example.com/c</link>
  <pubDate>Sun, 13 Oct 2024 22:00:00 GMT</pubDate>
  <source url="https://www.bloomberg.com">Bloomberg.com</source>
</item>
</channel>
</rss>`

func TestNewsRepository_GetHeadlines(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(newsFeed))
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.News.FeedURL = srv.URL + "/rss/search?q=%s&hl=en-US"
	repo := NewNewsRepository(cfg, logger.NewNop())

	items, err := repo.GetHeadlines(context.Background(), "global markets", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "global markets", gotQuery)

	// newest first
	assert.Equal(t, "Gold hits record high", items[0].Title)
	assert.Equal(t, "ft.com", items[0].Publisher)

	assert.Equal(t, "Stocks slip as yields climb", items[1].Title)
	assert.Equal(t, "Reuters", items[1].Publisher)
	assert.Equal(t, "https://news.example.com/a", items[1].Link)
	assert.Equal(t, 2024, items[1].PublishedAt.Year())
}

func TestNewsRepository_FeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.News.FeedURL = srv.URL
	repo := NewNewsRepository(cfg, logger.NewNop())

	_, err := repo.GetHeadlines(context.Background(), "markets", 5)
	assert.Error(t, err)
}
