package pricing

import (
	"strings"

	"github.com/nameworth/nameworth/internal/domain"
)

// Flat deltas used by the fallback model. The model is intentionally
// coarse: it exists to keep appraisals flowing when the remote
// estimator is unreachable, not to compete with it.
const (
	floorPrice     = 20
	keywordBonus   = 50
	digitPenalty   = -30
	hyphenPenalty  = -30
	pronounceBonus = 30
	structureBonus = 20
	defaultTLD     = 20
)

// tldScores holds elevated flat scores for extensions that carry
// aftermarket demand on their own.
var tldScores = map[string]int{
	"com": 100,
	"ai":  80,
	"io":  60,
	"co":  50,
	"app": 50,
	"net": 50,
	"dev": 40,
	"org": 40,
	"xyz": 30,
}

// commercialKeywords is scanned in order; the first substring match in
// the SLD wins and the scan stops. First-match-in-list-order, not
// best-match.
var commercialKeywords = []string{
	"shop", "store", "tech", "app", "crypto", "coin", "pay",
	"cloud", "host", "game", "bet", "meta", "web", "data",
	"smart", "auto", "health", "travel", "food", "home",
	"loan", "bank", "insure", "legal", "news", "media",
	"music", "video", "photo", "ai",
}

// Signals is the per-signal breakdown behind a fallback price.
type Signals struct {
	Length          int    `json:"length"`
	TLD             int    `json:"tld"`
	KeywordDetected string `json:"keyword_detected,omitempty"`
	Penalty         int    `json:"penalty"`
	PronounceBonus  int    `json:"pronounce_bonus"`
	StructureBonus  int    `json:"structure_bonus"`
}

// FallbackResult is the local model's answer: an integer price, never
// below the floor, plus the signals that produced it.
type FallbackResult struct {
	Price   int     `json:"fallback_price"`
	Signals Signals `json:"signals"`
}

// Fallback prices a full domain (SLD plus extension) with the local
// deterministic model. An input with no separator is a recognized
// degenerate case and prices at the floor with zeroed signals.
func Fallback(rawDomain string) FallbackResult {
	name, ok := domain.Split(domain.Normalize(rawDomain))
	if !ok {
		return FallbackResult{Price: floorPrice}
	}

	sld := name.SLD
	sig := Signals{
		Length: lengthBand(len(sld)),
		TLD:    tldScore(name.TLD),
	}

	var kwBonus int
	for _, kw := range commercialKeywords {
		if strings.Contains(sld, kw) {
			sig.KeywordDetected = kw
			kwBonus = keywordBonus
			break
		}
	}

	if strings.ContainsAny(sld, "0123456789") {
		sig.Penalty += digitPenalty
	}
	if strings.Contains(sld, "-") {
		sig.Penalty += hyphenPenalty
	}

	if len(sld) > 0 && vowelRatio(sld) > 0.30 {
		sig.PronounceBonus = pronounceBonus
	}

	if WordEstimate(sld) <= 2 {
		sig.StructureBonus = structureBonus
	}

	price := sig.Length + sig.TLD + kwBonus + sig.Penalty + sig.PronounceBonus + sig.StructureBonus
	if price < floorPrice {
		price = floorPrice
	}

	return FallbackResult{Price: price, Signals: sig}
}

// lengthBand maps SLD length onto four fixed bands, shorter is higher.
func lengthBand(n int) int {
	switch {
	case n <= 4:
		return 100
	case n <= 7:
		return 80
	case n <= 12:
		return 60
	default:
		return 40
	}
}

func tldScore(tld string) int {
	if s, ok := tldScores[tld]; ok {
		return s
	}
	return defaultTLD
}

func vowelRatio(s string) float64 {
	vowels := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		}
	}
	return float64(vowels) / float64(len(s))
}

// WordEstimate guesses how many words make up an SLD. Hyphenated names
// count their segments; otherwise anything up to ten characters is
// treated as one word and anything longer as two.
func WordEstimate(sld string) int {
	if strings.Contains(sld, "-") {
		return len(strings.Split(sld, "-"))
	}
	if len(sld) <= 10 {
		return 1
	}
	return 2
}
