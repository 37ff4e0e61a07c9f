package textrank

import (
	"math"
	"sort"
)

// TermVector is a sparse term weighting. Absent terms weigh zero.
type TermVector map[string]float64

// SimilarityMatrix is a symmetric N×N matrix of sentence similarities with a
// zero diagonal.
type SimilarityMatrix [][]float64

// Vectorize builds one TF-IDF vector per sentence of doc. Term frequency is
// the raw count within a sentence; idf is smoothed as ln((N+1)/(df+1)) + 1.
func Vectorize(doc Document) []TermVector {
	n := doc.Len()
	if n == 0 {
		return nil
	}
	tfs := make([]map[string]int, n)
	df := make(map[string]int)
	for i, s := range doc.Sentences {
		tf := make(map[string]int, len(s.Tokens))
		for _, w := range s.Tokens {
			if tf[w] == 0 {
				df[w]++
			}
			tf[w]++
		}
		tfs[i] = tf
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(float64(n+1)/float64(count+1)) + 1
	}

	vectors := make([]TermVector, n)
	for i, tf := range tfs {
		vec := make(TermVector, len(tf))
		for term, count := range tf {
			vec[term] = float64(count) * idf[term]
		}
		vectors[i] = vec
	}
	return vectors
}

// Terms returns the keys of v in lexical order. Sums over a vector always
// run in this order so that results are bit-for-bit reproducible.
func (v TermVector) Terms() []string {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Norm returns the Euclidean length of v.
func (v TermVector) Norm() float64 {
	return norm(v, v.Terms())
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero length.
func Cosine(a, b TermVector) float64 {
	ta, tb := a.Terms(), b.Terms()
	return cosine(a, ta, norm(a, ta), b, tb, norm(b, tb))
}

func norm(v TermVector, terms []string) float64 {
	var sum float64
	for _, t := range terms {
		w := v[t]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// cosine only walks the terms of the smaller vector; a term missing from the
// other side contributes nothing to the dot product.
func cosine(a TermVector, ta []string, na float64, b TermVector, tb []string, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	small, terms, large := a, ta, b
	if len(tb) < len(ta) {
		small, terms, large = b, tb, a
	}
	var dot float64
	for _, t := range terms {
		if w, ok := large[t]; ok {
			dot += small[t] * w
		}
	}
	return dot / (na * nb)
}

// BuildSimilarity computes pairwise cosine similarities. When threshold is
// positive, entries below it are set to zero; the rest are left unscaled.
func BuildSimilarity(vectors []TermVector, threshold float64) SimilarityMatrix {
	n := len(vectors)
	terms := make([][]string, n)
	norms := make([]float64, n)
	for i, v := range vectors {
		terms[i] = v.Terms()
		norms[i] = norm(v, terms[i])
	}

	m := make(SimilarityMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := cosine(vectors[i], terms[i], norms[i], vectors[j], terms[j], norms[j])
			if threshold > 0 && s < threshold {
				s = 0
			}
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}

// RowSums returns the total outgoing weight of every row.
func (m SimilarityMatrix) RowSums() []float64 {
	sums := make([]float64, len(m))
	for i, row := range m {
		for _, w := range row {
			sums[i] += w
		}
	}
	return sums
}
