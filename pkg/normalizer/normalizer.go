package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the matching key for an ingredient name: trimmed,
// lower-cased, accents stripped, internal whitespace collapsed, and a
// trailing "es" or "s" removed. It is a matching heuristic, not a
// grammatically complete singularizer, and the result is never stored.
func Normalize(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))

	if stripped, _, err := transform.String(stripAccents, normalized); err == nil {
		normalized = stripped
	}

	normalized = strings.Join(strings.Fields(normalized), " ")

	if strings.HasSuffix(normalized, "es") && len(normalized) > 2 {
		normalized = normalized[:len(normalized)-2]
	} else if strings.HasSuffix(normalized, "s") && len(normalized) > 1 {
		normalized = normalized[:len(normalized)-1]
	}

	// Stripping a one-letter plural word can leave a dangling space.
	return strings.TrimSpace(normalized)
}
