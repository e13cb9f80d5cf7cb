package embed

import (
	"context"
	"hash/fnv"
	"math"
)

// HashingEmbedder is a deterministic, dependency-free Embedder: each
// significant word of the text is feature-hashed into one of Dim
// buckets with a sign bit, and the resulting vector is L2-normalized.
// The same text always produces the same vector, so ingest-time and
// query-time representations stay comparable without an external
// model. Deployments with a real embedding model substitute their own
// Embedder; both sides of a corpus must use the same one.
type HashingEmbedder struct {
	Dim       int
	tokenizer *Tokenizer
}

// NewHashingEmbedder constructs a HashingEmbedder of the given fixed
// dimension.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	return &HashingEmbedder{Dim: dim, tokenizer: NewTokenizer()}
}

func (h *HashingEmbedder) Dimension() int { return h.Dim }

func (h *HashingEmbedder) Embed(ctx context.Context, text string) (Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v := make(Vector, h.Dim)
	for _, w := range h.tokenizer.SignificantWords(text) {
		hsh := fnv.New64a()
		hsh.Write([]byte(w))
		sum := hsh.Sum64()
		bucket := int(sum % uint64(h.Dim))
		sign := 1.0
		if sum&(1<<63) != 0 {
			sign = -1.0
		}
		v[bucket] += sign
	}
	var mag float64
	for _, x := range v {
		mag += x * x
	}
	if mag > 0 {
		mag = math.Sqrt(mag)
		for i := range v {
			v[i] /= mag
		}
	}
	return v, nil
}
