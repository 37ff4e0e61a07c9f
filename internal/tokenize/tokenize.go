// Package tokenize turns sentences and documents into normalized content
// words. Both the summarizer and the keyword extractor use it so that the two
// pipelines agree on what a word is.
package tokenize

import (
	"strings"
	"unicode"
)

// MinKeywordLength is the exclusive lower bound on token length in keyword
// mode. Two-letter tokens are too noisy to suggest as tags.
const MinKeywordLength = 2

// Words normalizes s and splits it into lowercase tokens made of
// [a-z0-9'] characters. Curly single and double quotes become apostrophes.
// No stopword filtering is applied.
func Words(s string) []string {
	if s == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '‘' || r == '’' || r == '“' || r == '”':
			b.WriteByte('\'')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// ForSummary returns the non-stopword tokens of s.
func ForSummary(s string) []string {
	return filter(Words(s), 0)
}

// ForKeywords returns the non-stopword tokens of s longer than
// MinKeywordLength characters.
func ForKeywords(s string) []string {
	return filter(Words(s), MinKeywordLength)
}

func filter(words []string, minExclusive int) []string {
	out := words[:0]
	for _, w := range words {
		if len(w) <= minExclusive || IsStopword(w) {
			continue
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
