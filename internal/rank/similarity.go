// Package rank fuses per-method candidate rankings via Reciprocal Rank
// Fusion. The similarity primitives below back the dense method and an
// optional local keyword scorer.
package rank

import (
	"math"

	"github.com/brain2/matchcore/internal/embed"
)

// CosineSimilarity computes cosine similarity between two equal-length
// dense vectors. Mismatched or zero-magnitude vectors return 0: can't
// compare, treat as no similarity.
func CosineSimilarity(a, b embed.Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// JaccardSimilarity computes intersection-over-union of two keyword
// term sets. It backs the keyword-overlap score the query path
// supplies as the "keyword" method for product/service ranking; the
// ranker itself never computes BM25 term statistics — those are
// consumed, not computed, when supplied externally.
func JaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	union := make(map[string]bool, len(a)+len(b))
	intersection := 0
	for k := range a {
		union[k] = true
		if b[k] {
			intersection++
		}
	}
	for k := range b {
		union[k] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}
