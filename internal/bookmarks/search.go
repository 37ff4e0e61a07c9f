package bookmarks

import (
	"context"
	"sort"
	"strings"
)

// MaxTags caps the tags stored on one bookmark.
const MaxTags = 8

// ParseTags splits a comma-separated tag string, trimming entries, dropping
// empty ones and keeping at most MaxTags.
func ParseTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
			if len(out) == MaxTags {
				break
			}
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// Result is a bookmark with its relevance to a query in [0,1].
type Result struct {
	Bookmark
	Score float64 `json:"score"`
}

// Search scores every bookmark against query and returns the matches, best
// first and newest first among equal scores.
func (s *Store) Search(ctx context.Context, query string) ([]Result, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Result
	for _, b := range all {
		if score := Score(query, b); score > 0 {
			out = append(out, Result{Bookmark: b, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// Score rates how well b matches query. An empty query matches everything
// and a verbatim substring of the bookmark's text scores 1. Otherwise the
// score is the number of bookmark tokens found among the query tokens,
// divided by the query token count and capped at 1.
func Score(query string, b Bookmark) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 1
	}
	hay := strings.ToLower(b.Title + " " + b.Summary + " " + b.URL + " " + strings.Join(b.Tags, " "))
	if strings.Contains(hay, query) {
		return 1
	}
	qTokens := searchTokens(query)
	if len(qTokens) == 0 {
		return 0
	}
	want := make(map[string]struct{}, len(qTokens))
	for _, t := range qTokens {
		want[t] = struct{}{}
	}
	overlap := 0
	for _, t := range searchTokens(hay) {
		if _, ok := want[t]; ok {
			overlap++
		}
	}
	score := float64(overlap) / float64(len(qTokens))
	if score > 1 {
		return 1
	}
	return score
}

// searchTokens splits on whitespace and keeps only [a-z0-9] in each token.
func searchTokens(s string) []string {
	var out []string
	for _, field := range strings.Fields(s) {
		t := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, field)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
