package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/utils"
)

// MaxMessageLength keeps every part below Telegram's 4096 character limit.
const MaxMessageLength = 4090

// FormatReportForTelegram renders the snapshot and briefing as Markdown,
// split into parts of at most MaxMessageLength characters.
func FormatReportForTelegram(at time.Time, records []entity.QuoteRecord, briefing entity.BriefingResult) []string {
	var blocks []string

	var quotes strings.Builder
	quotes.WriteString(fmt.Sprintf("📊 *Market Snapshot* (%s)\n\n", utils.PrettyDate(at)))
	for _, r := range records {
		quotes.WriteString(FormatQuoteLine(r))
		quotes.WriteString("\n")
	}
	blocks = append(blocks, quotes.String())

	text := normalizeMarkdown(briefing.Text)
	for _, paragraph := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		blocks = append(blocks, paragraph+"\n\n")
	}
	blocks = append(blocks, fmt.Sprintf("🤖 _%s_\n", briefing.ModelUsed))

	return splitMessages(blocks, MaxMessageLength, func(part int) string {
		if part == 1 {
			return "📰 *Daily Market Briefing* 📰\n\n"
		}
		return fmt.Sprintf("---*Daily Market Briefing Part %d*---\n\n", part)
	})
}

// FormatQuoteLine renders one snapshot row.
func FormatQuoteLine(r entity.QuoteRecord) string {
	if !r.Available() {
		return fmt.Sprintf("⚪ %s: n/a", r.Label)
	}
	icon := "🟡"
	switch {
	case r.PercentChange > 0:
		icon = "🟢"
	case r.PercentChange < 0:
		icon = "🔴"
	}
	return fmt.Sprintf("%s %s: *%.2f* (%+.2f%%)", icon, r.Label, r.Price, r.PercentChange)
}

func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT] 
%s
🔧 %s
⚠️ %s	

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}

// splitMessages packs blocks into messages no longer than maxLen, starting
// each message with header(part). Blocks that alone exceed the limit are cut.
func splitMessages(blocks []string, maxLen int, header func(part int) string) []string {
	var messages []string
	var current strings.Builder
	part := 1
	current.WriteString(header(part))
	hasContent := false

	flush := func() {
		messages = append(messages, current.String())
		part++
		current.Reset()
		current.WriteString(header(part))
		hasContent = false
	}

	for _, block := range blocks {
		for block != "" {
			room := maxLen - runeLen(current.String())
			if runeLen(block) <= room {
				current.WriteString(block)
				hasContent = true
				block = ""
				continue
			}
			if hasContent {
				flush()
				continue
			}
			head, rest := cutRunes(block, room)
			current.WriteString(head)
			block = rest
			flush()
		}
	}
	if hasContent {
		messages = append(messages, current.String())
	}
	return messages
}

// normalizeMarkdown maps the double-asterisk bold of generated text onto
// Telegram's single-asterisk form.
func normalizeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "*")
	return strings.TrimSpace(s)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func cutRunes(s string, n int) (string, string) {
	r := []rune(s)
	if n >= len(r) {
		return s, ""
	}
	if n < 1 {
		n = 1
	}
	return string(r[:n]), string(r[n:])
}
