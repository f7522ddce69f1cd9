// Package fuzzy provides the text normalization and token-overlap scoring
// primitives shared by entity extraction, retrieval, and summarization.
// All weights and thresholds live with their callers; this package is pure
// functions over strings.
package fuzzy

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, strips every character outside [a-z0-9 -], and
// collapses runs of whitespace to single spaces. Both candidates and free
// text go through this before any comparison.
func Normalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for _, ch := range s {
		c := unicode.ToLower(ch)
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
			out.WriteRune(c)
		case unicode.IsSpace(c):
			out.WriteRune(' ')
		default:
			out.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(out.String()), " ")
}

// Tokens splits the normalized form of s on whitespace.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// StopWords filtered out of content tokenization. Matching and Jaccard use
// raw tokens; only frequency-style analysis (topic tallies, tech counts)
// filters these.
var StopWords = map[string]bool{
	"the": true, "of": true, "and": true, "a": true, "an": true,
	"to": true, "in": true, "on": true, "for": true, "at": true, "by": true,
	"is": true, "it": true, "as": true, "be": true, "was": true,
	"are": true, "been": true, "with": true, "from": true, "into": true,
	"that": true, "this": true, "has": true, "have": true, "had": true,
	"my": true, "your": true, "me": true, "i": true, "you": true,
	"what": true, "which": true, "how": true, "about": true, "tell": true,
}

// ContentTokens returns the normalized tokens of s with stop words removed.
func ContentTokens(s string) []string {
	words := Tokens(s)
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !StopWords[w] {
			result = append(result, w)
		}
	}
	return result
}

// Jaccard computes token-set overlap: |A ∩ B| / |A ∪ B|.
// Empty-vs-empty is 0, not 1: an empty candidate never matches.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}

	inter := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		}
	}

	union := len(set) + len(seen) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Similarity is the named composite score from the retrieval design:
// normalized-substring containment short-circuits to 1.0, otherwise the
// token-set Jaccard of the two strings. Range [0, 1].
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1.0
	}
	return Jaccard(strings.Fields(na), strings.Fields(nb))
}

// ContainsNormalized reports whether the normalized form of text contains
// the normalized form of candidate as a substring.
func ContainsNormalized(text, candidate string) bool {
	nc := Normalize(candidate)
	if nc == "" {
		return false
	}
	return strings.Contains(Normalize(text), nc)
}
