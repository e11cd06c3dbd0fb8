package domain

import "strings"

// Name is a domain name decomposed into its second-level label and
// extension. TLD holds everything after the first dot, so multi-label
// extensions like "co.uk" survive the split intact.
type Name struct {
	SLD string
	TLD string
}

// Normalize lowercases and trims a raw domain string. Scheme and "www."
// stripping happen upstream; this is the last pass before the string is
// used as a cache key or scoring input.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Split decomposes a normalized domain into SLD and TLD. The second
// return value is false when the input carries no dot; callers treat
// that as a recognized degenerate input, not an error.
func Split(domain string) (Name, bool) {
	idx := strings.Index(domain, ".")
	if idx < 0 {
		return Name{SLD: domain}, false
	}
	return Name{SLD: domain[:idx], TLD: domain[idx+1:]}, true
}

// SLDOnly returns the label that scoring operates on: the SLD when the
// input has an extension, the whole string otherwise.
func SLDOnly(domain string) string {
	name, _ := Split(Normalize(domain))
	return name.SLD
}
