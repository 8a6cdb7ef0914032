package repository

import (
	"strings"
	"testing"
	"time"

	"golang-market-briefing/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildBriefingPrompt(t *testing.T) {
	summary := "S&P 500   5,000.00   +1.20%\nGold      2,400.00   n/a"

	prompt := BuildBriefingPrompt(summary, nil)
	assert.Contains(t, prompt, summary)
	assert.Contains(t, prompt, "global macro investment strategist")
	assert.Contains(t, prompt, "[Format]")
	assert.NotContains(t, prompt, "Latest headlines")

	withNews := BuildBriefingPrompt(summary, []entity.NewsItem{
		{Title: "Stocks slip", Publisher: "Reuters", PublishedAt: time.Date(2024, 10, 14, 8, 0, 0, 0, time.UTC), Excerpt: "Yields rose."},
		{Title: "Gold record", Publisher: "FT"},
	})
	assert.Contains(t, withNews, "1. Stocks slip (Reuters, 2024-10-14 08:00)")
	assert.Contains(t, withNews, "   Yields rose.")
	assert.Contains(t, withNews, "2. Gold record (FT, N/A)")
	assert.Less(t, strings.Index(withNews, summary), strings.Index(withNews, "Latest headlines"))
}
