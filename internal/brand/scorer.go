package brand

import (
	"math"
	"strings"

	"github.com/nameworth/nameworth/internal/domain"
)

// Label buckets a composite score into the five quality grades used by
// the appraisal surfaces.
type Label string

const (
	LabelPoor    Label = "Poor"
	LabelWeak    Label = "Weak"
	LabelAverage Label = "Average"
	LabelStrong  Label = "Strong"
	LabelPremium Label = "Premium"
)

// Sub-model raw ranges. Each signal is clamped to its own range before
// min-max normalization to 0..100.
const (
	pronMin, pronMax       = -40.0, 40.0
	cvMin, cvMax           = -25.0, 25.0
	langMin, langMax       = -35.0, 30.0
	entropyMin, entropyMax = -30.0, 20.0
	lexiconMin, lexiconMax = -20.0, 30.0
	lengthMin, lengthMax   = -10.0, 15.0
)

// Composite weights. They sum to 1.0; pronounceability dominates
// because it is the strongest single predictor of memorability.
const (
	weightPron    = 0.30
	weightCV      = 0.15
	weightLang    = 0.20
	weightEntropy = 0.10
	weightLexicon = 0.15
	weightLength  = 0.10
)

// Breakdown carries the six raw sub-scores, each within its documented
// range, so callers can explain a composite score.
type Breakdown struct {
	Pronounceability float64 `json:"pronounceability"`
	CVPattern        float64 `json:"cv_pattern"`
	Language         float64 `json:"language"`
	Entropy          float64 `json:"entropy"`
	Lexicon          float64 `json:"lexicon"`
	Length           float64 `json:"length"`
}

// Result is a complete brandability assessment for one name.
type Result struct {
	Score     int       `json:"score"`
	Label     Label     `json:"label"`
	Breakdown Breakdown `json:"breakdown"`
}

// Score rates how brandable a name is on a 0..100 scale. The input may
// be a bare label or a full domain; any extension is stripped before
// scoring. Pure and deterministic: no I/O, no clock, no randomness.
func Score(name string) Result {
	sld := domain.SLDOnly(name)

	breakdown := Breakdown{
		Pronounceability: scorePronounceability(sld),
		CVPattern:        scoreCVPattern(sld),
		Language:         scoreLanguage(sld),
		Entropy:          scoreEntropy(sld),
		Lexicon:          scoreLexicon(sld),
		Length:           scoreLength(sld),
	}

	composite := weightPron*normalize(breakdown.Pronounceability, pronMin, pronMax) +
		weightCV*normalize(breakdown.CVPattern, cvMin, cvMax) +
		weightLang*normalize(breakdown.Language, langMin, langMax) +
		weightEntropy*normalize(breakdown.Entropy, entropyMin, entropyMax) +
		weightLexicon*normalize(breakdown.Lexicon, lexiconMin, lexiconMax) +
		weightLength*normalize(breakdown.Length, lengthMin, lengthMax)

	score := int(math.Round(composite))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Label: labelFor(score), Breakdown: breakdown}
}

func labelFor(score int) Label {
	switch {
	case score >= 85:
		return LabelPremium
	case score >= 70:
		return LabelStrong
	case score >= 50:
		return LabelAverage
	case score >= 30:
		return LabelWeak
	default:
		return LabelPoor
	}
}

// normalize maps a clamped raw sub-score onto 0..100.
func normalize(raw, min, max float64) float64 {
	return (clamp(raw, min, max) - min) / (max - min) * 100
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// scorePronounceability rewards names a human can say out loud on the
// first try. Raw range -40..+40.
func scorePronounceability(s string) float64 {
	n := len(s)
	if n == 0 {
		return pronMin
	}

	vowels := 0
	for i := 0; i < n; i++ {
		if isVowel(s[i]) {
			vowels++
		}
	}
	ratio := float64(vowels) / float64(n)

	score := 0.0
	switch {
	case vowels == 0:
		score -= 25
	case ratio >= 0.3 && ratio <= 0.6:
		score += 15
	case ratio < 0.2 || ratio > 0.8:
		score -= 15
	}

	run := maxConsonantRun(s)
	if run > 4 {
		score -= 20
	} else if run > 3 {
		score -= 10
	}

	if n > 1 && alternationRatio(s) > 0.7 {
		score += 10
	}

	if syll := syllableCount(s); syll >= 2 && syll <= 4 {
		score += 15
	}

	return clamp(score, pronMin, pronMax)
}

func maxConsonantRun(s string) int {
	best, run := 0, 0
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) && !isVowel(s[i]) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// alternationRatio is the share of adjacent pairs that flip between
// vowel and consonant. "banana" alternates perfectly (1.0), "strndz"
// never does (0.0).
func alternationRatio(s string) float64 {
	flips := 0
	for i := 1; i < len(s); i++ {
		if isVowel(s[i]) != isVowel(s[i-1]) {
			flips++
		}
	}
	return float64(flips) / float64(len(s)-1)
}

// syllableCount estimates syllables by counting vowel-group starts,
// with an adjustment for a trailing silent "e".
func syllableCount(s string) int {
	count := 0
	inGroup := false
	for i := 0; i < len(s); i++ {
		if isVowel(s[i]) {
			if !inGroup {
				count++
			}
			inGroup = true
		} else {
			inGroup = false
		}
	}
	if count > 1 && strings.HasSuffix(s, "e") && len(s) >= 2 && !isVowel(s[len(s)-2]) {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// cvTemplates are the favored phonetic skeletons. A name whose pattern
// equals one scores highest; containing one still helps.
var cvTemplates = []string{"cvcvc", "cvcv", "vcvc", "cvvc", "vcv"}

// scoreCVPattern maps the name to a consonant/vowel skeleton and scores
// it against favored templates. Raw range -25..+25.
func scoreCVPattern(s string) float64 {
	if s == "" {
		return cvMin
	}

	var pattern strings.Builder
	cons, vows := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case isVowel(s[i]):
			pattern.WriteByte('v')
			vows++
		case isLetter(s[i]):
			pattern.WriteByte('c')
			cons++
		default:
			pattern.WriteByte('o')
		}
	}
	p := pattern.String()

	score := 0.0
	for _, tpl := range cvTemplates {
		if p == tpl {
			score += 25
			break
		}
		if strings.Contains(p, tpl) {
			score += 15
			break
		}
	}

	if strings.Contains(p, "cccc") {
		score -= 12
	}
	if strings.Contains(p, "vvvv") {
		score -= 10
	}
	if hasTripleRepeat(s) {
		score -= 10
	}
	if vows == 0 && cons >= 4 {
		score -= 12
	} else if vows > 0 && float64(cons)/float64(vows) > 4 {
		score -= 12
	}

	return clamp(score, cvMin, cvMax)
}

func hasTripleRepeat(s string) bool {
	for i := 2; i < len(s); i++ {
		if s[i] == s[i-1] && s[i] == s[i-2] {
			return true
		}
	}
	return false
}

// scoreLanguage slides a two-character window across the name and
// averages the bigram table scores, then maps the average into discrete
// naturalness bands. Raw range -35..+30.
func scoreLanguage(s string) float64 {
	if len(s) < 2 {
		return 0
	}

	total := 0.0
	count := 0
	for i := 0; i+1 < len(s); i++ {
		bg := s[i : i+2]
		if v, ok := bigramScores[bg]; ok {
			total += v
		} else {
			total += bigramUnseen
		}
		count++
	}
	avg := total / float64(count)

	switch {
	case avg >= 2.2: // reads like a dictionary word
		return 30
	case avg >= 1.2:
		return 18
	case avg >= 0.2:
		return 4
	case avg >= -1.2:
		return -16
	default: // gibberish
		return -35
	}
}

// scoreEntropy penalizes names whose character distribution looks
// random for their length, and names that are too repetitive to be
// distinctive. Raw range -30..+20.
func scoreEntropy(s string) float64 {
	n := len(s)
	if n == 0 {
		return entropyMin
	}
	if n == 1 {
		return 0
	}

	freq := map[byte]int{}
	for i := 0; i < n; i++ {
		freq[s[i]]++
	}
	h := 0.0
	for _, c := range freq {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}

	maxH := math.Log2(float64(n))
	rel := h / maxH

	switch {
	case n >= 10 && rel > 0.97: // every character distinct at length 10+
		return -30
	case h < 1.0: // one or two characters doing all the work
		return -20
	case rel >= 0.55 && rel <= 0.9:
		return 20
	default:
		return 0
	}
}

// scoreLexicon runs a substring-membership test against the curated
// brand lexicon. Raw range -20..+30.
func scoreLexicon(s string) float64 {
	score := -10.0
	matches := 0
	for _, tok := range brandTokens {
		if !strings.Contains(s, tok) {
			continue
		}
		score += 10
		if strings.HasPrefix(s, tok) || strings.HasSuffix(s, tok) {
			score += 5
		}
		matches++
		if matches == 2 {
			break
		}
	}
	for _, suf := range premiumSuffixes {
		if strings.HasSuffix(s, suf) {
			score += 10
			break
		}
	}
	return clamp(score, lexiconMin, lexiconMax)
}

// scoreLength bands the SLD character count; 5-10 characters is the
// sweet spot for recall and typing. Raw range -10..+15.
func scoreLength(s string) float64 {
	switch n := len(s); {
	case n >= 5 && n <= 10:
		return 15
	case n == 4 || (n >= 11 && n <= 12):
		return 8
	case n == 3:
		return 5
	case n >= 13 && n <= 16:
		return 0
	case n >= 1 && n <= 2:
		return -5
	default:
		return -10
	}
}
