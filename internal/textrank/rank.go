package textrank

import "math"

// RankResult is the outcome of the power iteration.
type RankResult struct {
	// Scores holds one non-negative score per sentence.
	Scores []float64
	// Iterations is the number of update steps performed.
	Iterations int
	// Converged is false when MaxIter was reached before the L1 delta fell
	// under Tolerance. The scores are still usable.
	Converged bool
}

// Rank scores the nodes of m with a damped power iteration:
//
//	next[i] = (1-d)/N + d * Σ_j m[j][i]/out[j] * score[j]
//
// A node with no outgoing weight spreads its score evenly over all N nodes,
// so the total mass stays at 1. Only Damping, MaxIter and Tolerance of cfg
// are used; cfg is normalized first.
func Rank(m SimilarityMatrix, cfg Config) RankResult {
	cfg = cfg.Normalize()
	n := len(m)
	if n == 0 {
		return RankResult{Converged: true}
	}
	nf := float64(n)
	d := cfg.Damping

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / nf
	}
	out := m.RowSums()

	next := make([]float64, n)
	res := RankResult{}
	for iter := 0; iter < cfg.MaxIter; iter++ {
		// mass held by rows without edges, shared uniformly
		var dangling float64
		for j := 0; j < n; j++ {
			if out[j] == 0 {
				dangling += scores[j]
			}
		}
		share := dangling / nf

		var delta float64
		for i := 0; i < n; i++ {
			sum := share
			for j := 0; j < n; j++ {
				w := m[j][i]
				if w == 0 || out[j] == 0 {
					continue
				}
				sum += w / out[j] * scores[j]
			}
			next[i] = (1-d)/nf + d*sum
			delta += math.Abs(next[i] - scores[i])
		}
		scores, next = next, scores
		res.Iterations = iter + 1
		if delta < cfg.Tolerance {
			res.Converged = true
			break
		}
	}
	res.Scores = scores
	return res
}
