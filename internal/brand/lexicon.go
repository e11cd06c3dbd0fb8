package brand

// brandTokens is the curated lexicon of fragments that show up in
// successful brand names. Membership is a plain substring test; order
// matters only in that the first two matches collect the per-match
// bonus.
var brandTokens = []string{
	"cloud", "tech", "app", "hub", "labs", "lab", "base",
	"stack", "flow", "sync", "snap", "dash", "loop", "nest",
	"forge", "wise", "link", "mint", "peak", "byte", "bit",
	"zen", "nova", "pulse", "spark", "shift", "scale", "pay",
	"go", "ly", "ify",
}

// premiumSuffixes collect a flat extra bonus when they close the name.
var premiumSuffixes = []string{"ify", "ly", "hub", "lab", "io"}
