package resolve

import (
	"regexp"
	"strings"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// legalSuffixes are stripped from vendor names before comparison. Category
// names never carry them, so the category normalizer leaves them alone.
var legalSuffixes = map[string]bool{
	"llc": true, "inc": true, "corp": true, "ltd": true, "co": true,
	"corporation": true, "incorporated": true, "limited": true,
	"company": true, "gmbh": true, "srl": true, "plc": true, "llp": true,
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]+`)
var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeName canonicalizes a name for comparison: lowercase, trim,
// "&" to "and", optional legal-suffix stripping, drop non-alphanumerics,
// collapse whitespace.
func NormalizeName(name string, kind domain.EntityKind) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if kind == domain.EntityKindVendor {
		words := strings.Fields(s)
		for len(words) > 1 && legalSuffixes[words[len(words)-1]] {
			words = words[:len(words)-1]
		}
		s = strings.Join(words, " ")
	}
	return s
}

// Similarity is normalized edit-distance similarity: 1 - distance/maxLen.
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
