// Package keywords suggests tags for a document. Explicit keywords supplied
// by the caller (for example page metadata) come first, followed by the most
// frequent content words of the body.
package keywords

import (
	"sort"
	"strings"

	"github.com/hyperifyio/goskim/internal/tokenize"
)

const (
	// FrequencyCandidates is how many frequency-ranked words are considered.
	FrequencyCandidates = 12
	// MaxTags caps the result when body text is present.
	MaxTags = 10
	// MaxExplicitOnly caps the result when there is no body text.
	MaxExplicitOnly = 6
)

// Term is a body word with its frequency.
type Term struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	// First is the token position of the word's first occurrence.
	First int `json:"first"`
}

// Rank counts keyword-mode tokens of text and returns them by count
// descending. Words with equal counts keep the order of their first
// occurrence.
func Rank(text string) []Term {
	tokens := tokenize.ForKeywords(text)
	if len(tokens) == 0 {
		return nil
	}
	index := make(map[string]int, len(tokens))
	terms := make([]Term, 0, len(tokens))
	for pos, w := range tokens {
		if i, ok := index[w]; ok {
			terms[i].Count++
			continue
		}
		index[w] = len(terms)
		terms = append(terms, Term{Word: w, Count: 1, First: pos})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].First < terms[j].First
	})
	return terms
}

// Extract returns the tag list for text. Explicit keywords are trimmed and
// lowercased and keep their order; frequency-ranked words follow. Duplicates
// are dropped by first occurrence. The list holds at most MaxTags entries,
// or MaxExplicitOnly when text is blank.
func Extract(text string, explicit []string) []string {
	if strings.TrimSpace(text) == "" {
		return merge(MaxExplicitOnly, explicit)
	}
	ranked := Rank(text)
	if len(ranked) > FrequencyCandidates {
		ranked = ranked[:FrequencyCandidates]
	}
	words := make([]string, len(ranked))
	for i, t := range ranked {
		words[i] = t.Word
	}
	return merge(MaxTags, explicit, words)
}

func merge(limit int, lists ...[]string) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, list := range lists {
		for _, raw := range list {
			if len(out) >= limit {
				return out
			}
			w := strings.ToLower(strings.TrimSpace(raw))
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
