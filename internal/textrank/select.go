package textrank

import (
	"math"
	"sort"
)

// TargetCount returns how many of n sentences to select under cfg.
func TargetCount(n int, cfg Config) int {
	if n <= 0 {
		return 0
	}
	cfg = cfg.Normalize()
	if cfg.HasRatio() {
		k := int(math.Round(float64(n) * cfg.Ratio))
		if k < 1 {
			k = 1
		}
		return k
	}
	k := cfg.NumSentences
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// TopK returns the indices of the k highest scores in ascending index order.
// Equal scores prefer the lower index.
func TopK(scores []float64, k int) []int {
	if k <= 0 || len(scores) == 0 {
		return nil
	}
	if k > len(scores) {
		k = len(scores)
	}
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		sa, sb := scores[idx[a]], scores[idx[b]]
		if sa != sb {
			return sa > sb
		}
		return idx[a] < idx[b]
	})
	picked := append([]int(nil), idx[:k]...)
	sort.Ints(picked)
	return picked
}
