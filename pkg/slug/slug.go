package slug

import (
	"regexp"
	"strings"
)

// nonSlugRegexp matches characters not allowed in a slug after spaces have
// been replaced with hyphens: anything outside [a-z0-9_-] is stripped.
var nonSlugRegexp = regexp.MustCompile(`[^a-z0-9_-]+`)

// Generate creates a URL-friendly slug from a product name: lower-case,
// spaces become hyphens, and every remaining non-word, non-hyphen character
// is dropped.
//
// Examples:
//   - "Sarten Antiadherente" → "sarten-antiadherente"
//   - "Olla (24 cm)"         → "olla-24-cm"
//   - "Mate    Imperial"     → "mate-imperial"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugRegexp.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}
