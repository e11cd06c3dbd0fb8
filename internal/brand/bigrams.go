package brand

// bigramScores holds log-frequency-derived scores for common English
// bigrams. Values are on a rough -3..+4 scale; anything absent from the
// table scores bigramUnseen. The table was seeded from standard English
// letter-pair frequency counts and trimmed to pairs that actually move
// the average for short labels.
const bigramUnseen = -2.5

var bigramScores = map[string]float64{
	"th": 4.0, "he": 3.9, "in": 3.8, "er": 3.8, "an": 3.7,
	"re": 3.6, "on": 3.5, "at": 3.4, "en": 3.4, "nd": 3.3,
	"ti": 3.3, "es": 3.3, "or": 3.2, "te": 3.2, "of": 3.1,
	"ed": 3.1, "is": 3.1, "it": 3.0, "al": 3.0, "ar": 3.0,
	"st": 3.0, "to": 2.9, "nt": 2.9, "ng": 2.8, "se": 2.8,
	"ha": 2.8, "as": 2.7, "ou": 2.7, "io": 2.7, "le": 2.7,
	"ve": 2.6, "co": 2.6, "me": 2.6, "de": 2.5, "hi": 2.5,
	"ri": 2.5, "ro": 2.5, "ic": 2.4, "ne": 2.4, "ea": 2.4,
	"ra": 2.4, "ce": 2.3, "li": 2.3, "ch": 2.3, "ll": 2.2,
	"be": 2.2, "ma": 2.2, "si": 2.2, "om": 2.1, "ur": 2.1,
	"ca": 2.1, "el": 2.1, "ta": 2.0, "la": 2.0, "ns": 2.0,
	"di": 1.9, "fo": 1.9, "ho": 1.9, "pe": 1.9, "ec": 1.8,
	"pr": 1.8, "no": 1.8, "ct": 1.8, "us": 1.7, "ac": 1.7,
	"ot": 1.7, "il": 1.7, "tr": 1.6, "ly": 1.6, "nc": 1.6,
	"et": 1.6, "ut": 1.5, "ss": 1.5, "so": 1.5, "rs": 1.5,
	"un": 1.4, "lo": 1.4, "wa": 1.4, "ge": 1.4, "ie": 1.3,
	"wh": 1.3, "ee": 1.3, "wi": 1.3, "em": 1.2, "ad": 1.2,
	"ol": 1.2, "rt": 1.2, "po": 1.1, "we": 1.1, "na": 1.1,
	"ul": 1.0, "ni": 1.0, "ts": 1.0, "mo": 1.0, "ow": 0.9,
	"pa": 0.9, "im": 0.9, "mi": 0.9, "ai": 0.8, "sh": 0.8,
	"ir": 0.8, "su": 0.8, "id": 0.7, "os": 0.7, "iv": 0.7,
	"am": 0.7, "fi": 0.6, "ci": 0.6, "vi": 0.6, "pl": 0.6,
	"ig": 0.5, "tu": 0.5, "ev": 0.5, "ld": 0.5, "ry": 0.4,
	"mp": 0.4, "fe": 0.4, "bl": 0.4, "ab": 0.3, "gh": 0.3,
	"ty": 0.3, "op": 0.3, "wo": 0.2, "sa": 0.2, "ay": 0.2,
	"ex": 0.2, "ke": 0.1, "fr": 0.1, "oo": 0.1, "av": 0.1,
	"ag": 0.0, "if": 0.0, "ub": 0.0, "ud": 0.0, "ff": -0.2,
	"gi": -0.2, "by": -0.3, "ga": -0.3, "va": -0.3, "og": -0.4,
	"ja": -0.6, "jo": -0.6, "ka": -0.7, "ki": -0.7, "za": -0.9,
	"zo": -0.9, "qu": -1.0, "xi": -1.4, "xa": -1.5, "jj": -2.0,
}
