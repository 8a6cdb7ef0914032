package telegram

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang-market-briefing/internal/entity"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	failFor map[string]bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, msg)
	if f.failFor[msg.ParseMode] {
		return tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")
	}
	return tgbotapi.Message{}, nil
}

func TestClient_SendMessageFallsBackToPlainText(t *testing.T) {
	bot := &fakeSender{failFor: map[string]bool{tgbotapi.ModeMarkdown: true}}
	c := &client{bot: bot, chatID: 42}

	require.NoError(t, c.SendMessage("*unbalanced"))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, tgbotapi.ModeMarkdown, bot.sent[0].ParseMode)
	assert.Equal(t, "", bot.sent[1].ParseMode)
	assert.Equal(t, int64(42), bot.sent[1].ChatID)
}

func TestClient_SendMessageReportsFailure(t *testing.T) {
	bot := &fakeSender{failFor: map[string]bool{tgbotapi.ModeMarkdown: true, "": true}}
	c := &client{bot: bot, chatID: 42}

	assert.Error(t, c.SendMessage("text"))
}

func TestFormatQuoteLine(t *testing.T) {
	assert.Equal(t, "🟢 Apple: *190.50* (+1.25%)", FormatQuoteLine(entity.QuoteRecord{Label: "Apple", Price: 190.5, PercentChange: 1.25, Status: entity.QuoteStatusOK}))
	assert.Equal(t, "🔴 Gold: *2400.00* (-0.50%)", FormatQuoteLine(entity.QuoteRecord{Label: "Gold", Price: 2400, PercentChange: -0.5, Status: entity.QuoteStatusOK}))
	assert.Equal(t, "⚪ Oil: n/a", FormatQuoteLine(entity.QuoteRecord{Label: "Oil", Status: entity.QuoteStatusUnavailable}))
}

func TestFormatReportForTelegram_SplitsLongBriefings(t *testing.T) {
	paragraph := strings.Repeat("Equities rallied on **strong** earnings. ", 40)
	text := strings.Repeat(paragraph+"\n\n", 8)

	messages := FormatReportForTelegram(
		time.Date(2024, 10, 14, 8, 0, 0, 0, time.UTC),
		[]entity.QuoteRecord{{Label: "S&P 500", Price: 5000, PercentChange: 1, Status: entity.QuoteStatusOK}},
		entity.BriefingResult{Status: entity.BriefingStatusSuccess, ModelUsed: "gemini-1.5-flash", Text: text},
	)

	require.Greater(t, len(messages), 1)
	for _, m := range messages {
		assert.LessOrEqual(t, len([]rune(m)), MaxMessageLength)
	}
	assert.True(t, strings.HasPrefix(messages[0], "📰 *Daily Market Briefing*"))
	assert.Contains(t, messages[0], "S&P 500")
	assert.True(t, strings.HasPrefix(messages[1], "---*Daily Market Briefing Part 2*---"))
	assert.NotContains(t, strings.Join(messages, ""), "**")
	assert.Contains(t, messages[len(messages)-1], "gemini-1.5-flash")
}

func TestSplitMessages_CutsOversizedBlock(t *testing.T) {
	header := func(part int) string { return "H\n" }
	messages := splitMessages([]string{strings.Repeat("x", 25)}, 10, header)

	require.Len(t, messages, 4)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), 10)
		assert.True(t, strings.HasPrefix(m, "H\n"))
	}
	assert.Equal(t, 25, strings.Count(strings.Join(messages, ""), "x"))
}
