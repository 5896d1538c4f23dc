// Package normalize turns free-form grocery item names into canonical
// lookup keys and finds near matches among existing names, so "Tomatoes",
// " tomato " and "tomatoe" all land in the same inventory group.
package normalize

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the minimum similarity ratio FindBestMatch accepts.
const MatchThreshold = 0.80

// Normalize produces the canonical key for an item name: trimmed,
// lower-cased, internal whitespace collapsed to single spaces, punctuation
// stripped, trailing plural "s" folded. Idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastSpace := true // leading whitespace is dropped
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		}
		// everything else (punctuation, symbols) is dropped
	}

	s := strings.TrimRight(b.String(), " ")
	return singularize(s)
}

// singularize folds a naive trailing plural. It only needs to be
// deterministic, not linguistically correct: "tomatoes" -> "tomatoe" ->
// same key for every spelling that shares it.
func singularize(s string) string {
	if len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}

// Similarity is the levenshtein ratio between the normalized forms of two
// names: 1 - distance/maxLen, in [0,1].
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1
	}
	max := len([]rune(na))
	if l := len([]rune(nb)); l > max {
		max = l
	}
	if max == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(max)
}

// FindBestMatch returns the candidate closest to raw, if its similarity
// clears MatchThreshold; otherwise "". Ties keep the earliest candidate so
// the result is deterministic for identical inputs.
func FindBestMatch(raw string, candidates []string) string {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := Similarity(raw, c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < MatchThreshold {
		return ""
	}
	return best
}

// CapitalizeDisplayName title-cases a raw name for display. Never used for
// key comparison.
func CapitalizeDisplayName(raw string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
