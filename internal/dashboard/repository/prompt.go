package repository

import (
	"fmt"
	"strings"

	"golang-market-briefing/internal/entity"
)

const briefingPromptTemplate = `You are a world-class global macro investment strategist.
Today's key global financial data is as follows:

%s
%s
Combine this data with the latest economic news and brief me on the "10 key economic stories of the day" that matter for growing my assets.

[Analysis points]
1. **Overall market:** the mood in US, Asian and European equities, and the impact of FX and interest rates
2. **Commodities:** what moves in oil (WTI) and gold signal about inflation
3. **Key companies:** price action and related news for Apple, Samsung Electronics, TSMC and other technology and market-leading stocks
4. **Emerging markets:** anything notable in the Indian and Chinese markets

[Format]
- Use a friendly, conversational tone.
- Emphasize important numbers in **bold**.
- Organize the answer cleanly in Markdown.
`

// BuildBriefingPrompt embeds the market summary verbatim, followed by the
// optional headline list.
func BuildBriefingPrompt(marketSummary string, headlines []entity.NewsItem) string {
	return fmt.Sprintf(briefingPromptTemplate, marketSummary, buildHeadlineSection(headlines))
}

func buildHeadlineSection(headlines []entity.NewsItem) string {
	if len(headlines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nLatest headlines:\n")
	for i, h := range headlines {
		published := "N/A"
		if !h.PublishedAt.IsZero() {
			published = h.PublishedAt.Format("2006-01-02 15:04")
		}
		b.WriteString(fmt.Sprintf("%d. %s (%s, %s)\n", i+1, h.Title, h.Publisher, published))
		if h.Excerpt != "" {
			b.WriteString(fmt.Sprintf("   %s\n", h.Excerpt))
		}
	}
	return b.String()
}
