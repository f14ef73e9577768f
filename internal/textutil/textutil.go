// Package textutil holds the shared tokenization and stopword filtering used
// by every scoring component. The scorers intentionally compute their own
// overlap signals, but they all tokenize the same way to avoid drift.
package textutil

import "strings"

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "how": true, "if": true, "in": true, "is": true,
	"it": true, "its": true, "not": true, "of": true, "on": true,
	"or": true, "she": true, "should": true, "that": true, "the": true,
	"their": true, "they": true, "this": true, "to": true, "was": true,
	"were": true, "what": true, "when": true, "where": true, "who": true,
	"why": true, "will": true, "with": true, "would": true, "you": true,
	"your": true,
}

// IsStopword reports whether the (lowercased) word is a stopword.
func IsStopword(w string) bool {
	return stopwords[strings.ToLower(w)]
}

// Tokenize lowercases text and splits it into words with surrounding
// punctuation stripped. Empty tokens are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()[]{}*_-—")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// MeaningfulWords returns tokens longer than two characters that are not
// stopwords.
func MeaningfulWords(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) > 2 && !stopwords[t] {
			out = append(out, t)
		}
	}
	return out
}

// TokenSet returns the set of meaningful words in text.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range MeaningfulWords(text) {
		set[w] = true
	}
	return set
}

// Overlap computes the Jaccard similarity of the meaningful-word sets of two
// texts: |intersection| / |union|. Two empty texts overlap completely.
func Overlap(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}
	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// SharedWords counts meaningful words present in both texts.
func SharedWords(a, b string) int {
	setB := TokenSet(b)
	n := 0
	for w := range TokenSet(a) {
		if setB[w] {
			n++
		}
	}
	return n
}
