package entity

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTickerSpec_UnmarshalYAML_PreservesOrder(t *testing.T) {
	doc := `
"🇺🇸 S&P 500": "^GSPC"
"🥇 Gold": "GC=F"
"🇰🇷 USD/KRW": "KRW=X"
`
	var spec TickerSpec
	require.NoError(t, yaml.Unmarshal([]byte(doc), &spec))

	want := TickerSpec{
		{Label: "🇺🇸 S&P 500", Symbol: "^GSPC"},
		{Label: "🥇 Gold", Symbol: "GC=F"},
		{Label: "🇰🇷 USD/KRW", Symbol: "KRW=X"},
	}
	require.Equal(t, "", cmp.Diff(want, spec))
}

func TestTickerSpec_UnmarshalYAML_Rejects(t *testing.T) {
	cases := map[string]string{
		"sequence":      "- a\n- b\n",
		"nested symbol": "A:\n  x: y\n",
		"empty symbol":  "A: \"\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var spec TickerSpec
			assert.Error(t, yaml.Unmarshal([]byte(doc), &spec))
		})
	}
}

func TestNewTickerSpec_DuplicateLabel(t *testing.T) {
	_, err := NewTickerSpec(Ticker{Label: "A", Symbol: "X"}, Ticker{Label: "A", Symbol: "Y"})
	assert.ErrorContains(t, err, "duplicate")
}

func TestDefaultTickerSpec(t *testing.T) {
	spec := DefaultTickerSpec()
	require.NoError(t, spec.Validate())
	assert.Len(t, spec, 16)
	assert.Equal(t, "^GSPC", spec[0].Symbol)
}

func TestLookback(t *testing.T) {
	_, err := ParseLookback("7y")
	assert.Error(t, err)

	l, err := ParseLookback("3y")
	require.NoError(t, err)
	assert.False(t, l.Native())
	assert.True(t, Lookback5d.Native())

	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), l.Start(end))
	assert.Equal(t, time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC), Lookback5d.Start(end))
}

func TestParseIntervalAndMode(t *testing.T) {
	i, err := ParseInterval("1wk")
	require.NoError(t, err)
	assert.Equal(t, Interval1wk, i)
	_, err = ParseInterval("2h")
	assert.Error(t, err)

	m, err := ParseChangeMode("period")
	require.NoError(t, err)
	assert.Equal(t, ChangeModePeriod, m)
	_, err = ParseChangeMode("weekly")
	assert.Error(t, err)
}
