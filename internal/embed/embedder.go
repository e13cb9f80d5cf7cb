package embed

import (
	"context"

	"github.com/brain2/matchcore/internal/matcherr"
)

// Vector is a fixed-dimension dense embedding.
type Vector []float64

// Embedder turns embedding text into a fixed-dimension vector. Model
// inference may block on I/O, so the port takes a context.Context. The
// same model must serve both ingest and query; model-version pinning
// is the caller's responsibility.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
	Dimension() int
}

// DimensionChecked wraps an Embedder and validates every returned
// vector's length. The dimension is fixed at construction; a mismatch
// is a hard error, never a silently stored short vector.
type DimensionChecked struct {
	Embedder
}

func (d DimensionChecked) Embed(ctx context.Context, text string) (Vector, error) {
	v, err := d.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(v) != d.Dimension() {
		return nil, matcherr.Config("embedder returned a vector of the wrong dimension", nil)
	}
	return v, nil
}
