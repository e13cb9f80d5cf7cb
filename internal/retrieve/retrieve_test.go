package retrieve

import (
	"context"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/store"
)

type fakeEmbedder struct {
	dim int
}

func (f fakeEmbedder) Embed(ctx context.Context, text string) (embed.Vector, error) {
	v := make(embed.Vector, f.dim)
	v[0] = 1
	return v, nil
}

func (f fakeEmbedder) Dimension() int { return f.dim }

func sampleQuery() domain.Listing {
	return domain.Listing{
		ID:       "q",
		Intent:   domain.IntentProduct,
		Domain:   map[string]struct{}{"electronics": {}},
		Category: map[string]struct{}{},
		Other:    domain.NewConstraint(),
		Self:     domain.NewConstraint(),
		Location: domain.NewConstraint(),
	}
}

func queryVector() embed.Vector { return embed.Vector{1, 0, 0} }

func TestRetrieve_UnionOfStructuredAndDense(t *testing.T) {
	ctx := context.Background()
	listings := store.NewMemoryListingStore()
	vectors := store.NewMemoryVectorStore()

	structuredOnly := sampleQuery()
	structuredOnly.ID = "structured-only"
	require.NoError(t, listings.Upsert(ctx, structuredOnly))

	denseOnly := sampleQuery()
	denseOnly.ID = "dense-only"
	require.NoError(t, vectors.Upsert(ctx, store.VectorPoint{ID: "dense-only", Vector: embed.Vector{1, 0, 0}, Intent: domain.IntentProduct, Domain: []string{"electronics"}}))

	r := New(listings, vectors, gobreaker.Settings{})
	candidates, err := r.Retrieve(ctx, sampleQuery(), queryVector(), 10)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, c := range candidates {
		ids[c.ListingID] = true
	}
	assert.True(t, ids["structured-only"])
	assert.True(t, ids["dense-only"])
}

func TestRetrieve_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	listings := store.NewMemoryListingStore()
	vectors := store.NewMemoryVectorStore()
	for _, id := range []string{"a", "b", "c"} {
		l := sampleQuery()
		l.ID = id
		require.NoError(t, listings.Upsert(ctx, l))
	}

	r := New(listings, vectors, gobreaker.Settings{})
	candidates, err := r.Retrieve(ctx, sampleQuery(), queryVector(), 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

// TestRetrieve_SafetyProperty: a listing whose domain intersects the
// query's always survives structured retrieval regardless of how
// dissimilar its embedding is, since the structured filter (not the
// dense filter) is what the matcher's own domain gate depends on.
func TestRetrieve_SafetyProperty(t *testing.T) {
	ctx := context.Background()
	listings := store.NewMemoryListingStore()
	vectors := store.NewMemoryVectorStore()

	matchable := sampleQuery()
	matchable.ID = "matchable"
	require.NoError(t, listings.Upsert(ctx, matchable))
	// Deliberately dissimilar embedding: dense search alone would rank
	// it last or drop it under a tight limit.
	require.NoError(t, vectors.Upsert(ctx, store.VectorPoint{ID: "matchable", Vector: embed.Vector{0, 0, 1}, Intent: domain.IntentProduct, Domain: []string{"electronics"}}))

	r := New(listings, vectors, gobreaker.Settings{})
	candidates, err := r.Retrieve(ctx, sampleQuery(), queryVector(), 1)
	require.NoError(t, err)

	found := false
	for _, c := range candidates {
		if c.ListingID == "matchable" {
			found = true
		}
	}
	assert.True(t, found, "structured filter must retrieve domain-intersecting listings regardless of dense rank")
}

func TestEmbedQuery_UsesProvidedEmbedder(t *testing.T) {
	r := New(store.NewMemoryListingStore(), store.NewMemoryVectorStore(), gobreaker.Settings{})
	v, err := r.EmbedQuery(context.Background(), fakeEmbedder{dim: 3}, "some query text")
	require.NoError(t, err)
	assert.Len(t, v, 3)
}

func TestFetchVector_MissingIsNotError(t *testing.T) {
	vectors := store.NewMemoryVectorStore()
	listings := store.NewMemoryListingStore()
	r := New(listings, vectors, gobreaker.Settings{})

	_, ok, err := r.FetchVector(context.Background(), domain.IntentProduct, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
