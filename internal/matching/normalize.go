package matching

import "strings"

// Normalize canonicalizes an ingredient name for comparison.
//
// It lower-cases the name, removes the " pieces" and " piece" suffixes, then
// strips one plural suffix ("es" if present, otherwise "s") and finally trims
// surrounding whitespace. This is a heuristic and not a lemmatizer, so "bus"
// becomes "bu" and "tomatoes " keeps its plural.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " pieces", "")
	s = strings.ReplaceAll(s, " piece", "")

	switch {
	case strings.HasSuffix(s, "es"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

// normalizeSet normalizes and de-duplicates names, keeping first-seen order.
func normalizeSet(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		norm := Normalize(n)
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}
