package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_RangeAndBreakdownBounds(t *testing.T) {
	inputs := []string{
		"", "x", "go", "startup", "sunrise.io", "brandify",
		"xqzvkj", "zzzzzzzz", "a-b-c-d", "12345", "aeiouaeiou",
		"supercalifragilistic", "my-long-hyphenated-name", "bbb",
	}

	for _, in := range inputs {
		res := Score(in)

		assert.GreaterOrEqual(t, res.Score, 0, "input %q", in)
		assert.LessOrEqual(t, res.Score, 100, "input %q", in)
		assert.Equal(t, labelFor(res.Score), res.Label, "input %q", in)

		b := res.Breakdown
		assert.GreaterOrEqual(t, b.Pronounceability, pronMin, "input %q", in)
		assert.LessOrEqual(t, b.Pronounceability, pronMax, "input %q", in)
		assert.GreaterOrEqual(t, b.CVPattern, cvMin, "input %q", in)
		assert.LessOrEqual(t, b.CVPattern, cvMax, "input %q", in)
		assert.GreaterOrEqual(t, b.Language, langMin, "input %q", in)
		assert.LessOrEqual(t, b.Language, langMax, "input %q", in)
		assert.GreaterOrEqual(t, b.Entropy, entropyMin, "input %q", in)
		assert.LessOrEqual(t, b.Entropy, entropyMax, "input %q", in)
		assert.GreaterOrEqual(t, b.Lexicon, lexiconMin, "input %q", in)
		assert.LessOrEqual(t, b.Lexicon, lexiconMax, "input %q", in)
		assert.GreaterOrEqual(t, b.Length, lengthMin, "input %q", in)
		assert.LessOrEqual(t, b.Length, lengthMax, "input %q", in)
	}
}

func TestScore_Deterministic(t *testing.T) {
	for _, in := range []string{"startup.io", "brandify", "xqzvkj"} {
		first := Score(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Score(in), "input %q", in)
		}
	}
}

func TestScore_SeparatesWordsFromGibberish(t *testing.T) {
	word := Score("sunrise")
	gibberish := Score("xqzvkj")

	assert.GreaterOrEqual(t, word.Score, 70, "pronounceable dictionary word should rate Strong or better")
	assert.Less(t, gibberish.Score, 30, "consonant soup should rate Poor")
	assert.Greater(t, word.Score, gibberish.Score)
}

func TestScore_StripsExtensionBeforeScoring(t *testing.T) {
	assert.Equal(t, Score("sunrise"), Score("sunrise.io"))
	assert.Equal(t, Score("sunrise"), Score("SUNRISE.COM"))
}

func TestLabelFor_Thresholds(t *testing.T) {
	cases := []struct {
		score int
		want  Label
	}{
		{0, LabelPoor}, {29, LabelPoor},
		{30, LabelWeak}, {49, LabelWeak},
		{50, LabelAverage}, {69, LabelAverage},
		{70, LabelStrong}, {84, LabelStrong},
		{85, LabelPremium}, {100, LabelPremium},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, labelFor(tc.score), "score %d", tc.score)
	}
}

func TestWeights_SumToOne(t *testing.T) {
	sum := weightPron + weightCV + weightLang + weightEntropy + weightLexicon + weightLength
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestSyllableCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"go", 1},
		{"banana", 3},
		{"stone", 1}, // trailing silent e
		{"idea", 2},  // "ea" is one vowel group
		{"zzz", 1},   // floor at one
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, syllableCount(tc.in), "input %q", tc.in)
	}
}

func TestScoreLexicon_RewardsBrandTokens(t *testing.T) {
	assert.Greater(t, scoreLexicon("brandify"), scoreLexicon("xqzvk"))
	assert.Greater(t, scoreLexicon("datahub"), scoreLexicon("qwrtp"))
}
