package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_StartupIO(t *testing.T) {
	res := Fallback("startup.io")

	// length 7 -> 80, io -> 60, no keyword, no penalties, vowel ratio
	// 2/7 misses the pronounce bonus, single word -> +20.
	assert.Equal(t, 80, res.Signals.Length)
	assert.Equal(t, 60, res.Signals.TLD)
	assert.Empty(t, res.Signals.KeywordDetected)
	assert.Equal(t, 0, res.Signals.Penalty)
	assert.Equal(t, 0, res.Signals.PronounceBonus)
	assert.Equal(t, 20, res.Signals.StructureBonus)
	assert.Equal(t, 160, res.Price)
}

func TestFallback_FloorAlwaysEnforced(t *testing.T) {
	inputs := []string{
		"nodot",
		"",
		"x9-q7-z3-k1-m5-w8-r2-v6.unknowntld", // digits + hyphens stack
		"zzzzzzzzzzzzzzzzzzzzzz.zz",
	}
	for _, in := range inputs {
		res := Fallback(in)
		assert.GreaterOrEqual(t, res.Price, 20, "input %q", in)
	}
}

func TestFallback_NoSeparatorIsFloorWithZeroSignals(t *testing.T) {
	res := Fallback("justaname")
	assert.Equal(t, 20, res.Price)
	assert.Equal(t, Signals{}, res.Signals)
}

func TestFallback_PenaltiesStack(t *testing.T) {
	clean := Fallback("techdeal.com")
	withDigit := Fallback("techdea1.com")
	withBoth := Fallback("tech-dea1.com")

	assert.Equal(t, 0, clean.Signals.Penalty)
	assert.Equal(t, -30, withDigit.Signals.Penalty)
	assert.Equal(t, -60, withBoth.Signals.Penalty)
}

func TestFallback_KeywordFirstMatchInListOrder(t *testing.T) {
	// "shopstore" matches both "shop" and "store"; the list scans in
	// order so "shop" wins.
	res := Fallback("shopstore.com")
	assert.Equal(t, "shop", res.Signals.KeywordDetected)

	// "storeshop" still reports "shop": list order, not position in
	// the SLD, decides the match.
	res = Fallback("storeshop.com")
	assert.Equal(t, "shop", res.Signals.KeywordDetected)
}

func TestFallback_PronounceBonusThreshold(t *testing.T) {
	// "aerie" has vowel ratio 4/5, comfortably above 0.30.
	assert.Equal(t, 30, Fallback("aerie.com").Signals.PronounceBonus)
	// "startup" sits at 2/7 (~0.286), just under the threshold.
	assert.Equal(t, 0, Fallback("startup.com").Signals.PronounceBonus)
}

func TestFallback_StructureBonus(t *testing.T) {
	// Hyphen segments count as words; three segments miss the bonus.
	assert.Equal(t, 0, Fallback("one-two-three.com").Signals.StructureBonus)
	// Two segments still qualify.
	assert.Equal(t, 20, Fallback("one-two.com").Signals.StructureBonus)
	// Eleven characters without a hyphen estimate as two words.
	assert.Equal(t, 20, Fallback("elevenchars.com").Signals.StructureBonus)
}

func TestFallback_MultiLabelTLD(t *testing.T) {
	res := Fallback("startup.co.uk")
	// TLD is everything after the first dot; "co.uk" is not in the
	// premium table so it takes the flat default.
	assert.Equal(t, 20, res.Signals.TLD)
}

func TestFallback_Deterministic(t *testing.T) {
	first := Fallback("brandify.ai")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Fallback("brandify.ai"))
	}
}

func TestWordEstimate(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"short", 1},
		{"tencharssz", 1},
		{"elevencharr", 2},
		{"two-words", 2},
		{"a-b-c", 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WordEstimate(tc.in), "input %q", tc.in)
	}
}
