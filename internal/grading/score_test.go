package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		ok      bool
		num     float64
		den     float64
		wantPct float64
	}{
		{"simple fraction", "8/15", true, 8, 15, 53.3},
		{"decimal comma", "3,5/10", true, 3.5, 10, 35.0},
		{"decimal point", "7.5/10", true, 7.5, 10, 75.0},
		{"surrounding spaces", "  12 / 20 ", true, 12, 20, 60.0},
		{"trailing text is ignored", "9/10 (herexamen)", true, 9, 10, 90.0},
		{"not a fraction", "abc", false, 0, 0, 0},
		{"missing slash", "15", false, 0, 0, 0},
		{"zero denominator", "5/0", false, 0, 0, 0},
		{"comma-only denominator", "5/,", false, 0, 0, 0},
		{"dot numerator", "./10", false, 0, 0, 0},
		{"empty", "", false, 0, 0, 0},
		{"leading text", "score 8/10", false, 0, 0, 0},
		{"several decimal points", "1.2.3/4", false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ParseScore(tt.in)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.num, s.Num)
			assert.Equal(t, tt.den, s.Den)
			assert.Equal(t, tt.wantPct, s.Pct())
		})
	}
}

// Prefix matching is the canonical behaviour; the strict variant rejects trailing content.
func TestParseScoreStrictRejectsTrailingContent(t *testing.T) {
	_, ok := ParseScore("9/10 abs")
	assert.True(t, ok)

	_, ok = ParseScoreStrict("9/10 abs")
	assert.False(t, ok)

	s, ok := ParseScoreStrict(" 9/10 ")
	assert.True(t, ok)
	assert.Equal(t, Score{Num: 9, Den: 10}, s)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "53.3%", FormatPercent(53.333))
	assert.Equal(t, "50.0%", FormatPercent(50))
	assert.Equal(t, "100.0%", FormatPercent(100))
}

func TestPercentZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 83.3, Percent(10, 12))
}
