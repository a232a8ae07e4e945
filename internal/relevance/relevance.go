// Package relevance classifies candidates via keyword substring matching.
// Intentionally permissive: no stemming, no tokenization — a possibly
// irrelevant notification is cheaper than a missed one.
package relevance

import "strings"

// Keywords is an ordered set of substrings matched case-insensitively.
type Keywords []string

// Parse normalizes a raw keyword list: trims whitespace, lowercases, drops
// empties. Order is preserved.
func Parse(raw []string) Keywords {
	out := make(Keywords, 0, len(raw))
	for _, k := range raw {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Match reports whether any keyword appears in text, case-insensitively.
// An empty keyword set matches nothing.
func (kw Keywords) Match(text string) bool {
	if len(kw) == 0 {
		return false
	}
	lowered := strings.ToLower(text)
	for _, k := range kw {
		if k == "" {
			continue
		}
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
