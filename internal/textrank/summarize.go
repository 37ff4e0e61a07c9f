// Package textrank implements extractive summarization: sentences are
// weighted with TF-IDF, linked by cosine similarity, scored with a
// PageRank-style power iteration, and the best ones are returned in their
// original order.
//
// Every function is pure. Nothing is cached between calls, so the package
// is safe for concurrent use without locking.
package textrank

import "strings"

// Summary is the inspectable result of summarizing one text.
type Summary struct {
	// Sentences are the candidates that survived segmentation and filtering.
	Sentences []Sentence
	// Scores holds one rank per candidate. It is nil when fewer than two
	// candidates remain and ranking was skipped.
	Scores []float64
	// Selected lists the chosen candidate indices in ascending order.
	Selected []int
	// Iterations and Converged describe the solver run.
	Iterations int
	Converged  bool
	// Text is the selected sentences joined by single spaces.
	Text string
}

// Summarize returns an extractive summary of text, or "" when text has no
// qualifying sentences.
func Summarize(text string, cfg Config) string {
	return Analyze(text, cfg).Text
}

// Analyze runs the full pipeline and returns the intermediate results along
// with the summary text.
func Analyze(text string, cfg Config) Summary {
	cfg = cfg.Normalize()
	doc := NewDocument(text, cfg.MinSentenceLength)
	out := Summary{Sentences: doc.Sentences}

	switch doc.Len() {
	case 0:
		return out
	case 1:
		out.Selected = []int{0}
		out.Converged = true
		out.Text = doc.Sentences[0].Text
		return out
	}

	sim := BuildSimilarity(Vectorize(doc), cfg.SimilarityThreshold)
	rank := Rank(sim, cfg)
	out.Scores = rank.Scores
	out.Iterations = rank.Iterations
	out.Converged = rank.Converged
	out.Selected = TopK(rank.Scores, TargetCount(doc.Len(), cfg))

	parts := make([]string, len(out.Selected))
	for i, idx := range out.Selected {
		parts[i] = doc.Sentences[idx].Text
	}
	out.Text = strings.Join(parts, " ")
	return out
}
