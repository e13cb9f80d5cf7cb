// Package retrieve turns a query listing into a bounded candidate id
// list via a structured filter and a dense vector filter. Retrieval
// must return a superset of everything the matcher could accept — this
// package never applies matcher logic, only domain/category
// intersection and nearest-neighbor search.
package retrieve

import (
	"context"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/store"
)

// Retriever wraps a ListingStore and VectorStore behind circuit
// breakers, one per blocking call: the relational query, the vector
// search, full-listing fetches, and embedding inference. Each call is
// also wrapped in a span.
type Retriever struct {
	listings store.ListingStore
	vectors  store.VectorStore
	tracer   trace.Tracer

	structuredBreaker *gobreaker.CircuitBreaker
	denseBreaker      *gobreaker.CircuitBreaker
	fetchBreaker      *gobreaker.CircuitBreaker
	embedBreaker      *gobreaker.CircuitBreaker
}

// Settings configures the circuit breakers guarding each suspension
// point. A zero value uses gobreaker's own defaults for every field
// except Name, which New always overrides per-breaker.
type Settings = gobreaker.Settings

func New(listings store.ListingStore, vectors store.VectorStore, settings Settings) *Retriever {
	named := func(name string) *gobreaker.CircuitBreaker {
		s := settings
		s.Name = name
		return gobreaker.NewCircuitBreaker(s)
	}
	return &Retriever{
		listings:          listings,
		vectors:           vectors,
		tracer:            otel.Tracer("matchcore/retrieve"),
		structuredBreaker: named("retrieve.structured_filter"),
		denseBreaker:      named("retrieve.dense_filter"),
		fetchBreaker:      named("retrieve.listing_fetch"),
		embedBreaker:      named("retrieve.embed_inference"),
	}
}

// Candidate is one surviving id from either stage of the two-stage
// filter, deduplicated.
type Candidate struct {
	ListingID string
}

// Retrieve runs the structured filter and the dense filter against a
// normalized query listing and its precomputed embedding, returning
// the union of both stages' ids, capped at limit. Ordering reflects
// retrieval-stage similarity; callers must not rely on it for
// eligibility. The caller embeds the query (via EmbedQuery) so the
// same vector serves both the dense filter and ranking.
func (r *Retriever) Retrieve(ctx context.Context, query domain.Listing, queryVector embed.Vector, limit int) ([]Candidate, error) {
	terms := retrievalTerms(query)

	structured, err := r.runStructured(ctx, query.Intent, terms)
	if err != nil {
		return nil, err
	}

	dense, err := r.runDense(ctx, query.Intent, queryVector, terms, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(structured)+len(dense))
	out := make([]Candidate, 0, len(structured)+len(dense))
	for _, p := range structured {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, Candidate{ListingID: p.ID})
		}
	}
	for _, p := range dense {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, Candidate{ListingID: p.ID})
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FetchListing retrieves the full canonical Listing for a candidate id.
func (r *Retriever) FetchListing(ctx context.Context, id string) (domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.listing_fetch")
	defer span.End()
	result, err := r.fetchBreaker.Execute(func() (interface{}, error) {
		return r.listings.Get(ctx, id)
	})
	if err != nil {
		return domain.Listing{}, wrapBreakerErr(err)
	}
	return result.(domain.Listing), nil
}

// FetchVector retrieves a candidate's stored dense embedding for
// ranking. A missing point is not an error.
func (r *Retriever) FetchVector(ctx context.Context, intent domain.Intent, id string) (embed.Vector, bool, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.vector_fetch")
	defer span.End()
	result, err := r.denseBreaker.Execute(func() (interface{}, error) {
		v, ok, err := r.vectors.Fetch(ctx, intent, id)
		return [2]interface{}{v, ok}, err
	})
	if err != nil {
		return nil, false, wrapBreakerErr(err)
	}
	pair := result.([2]interface{})
	v, _ := pair[0].(embed.Vector)
	ok, _ := pair[1].(bool)
	return v, ok, nil
}

func (r *Retriever) runStructured(ctx context.Context, intent domain.Intent, terms []string) ([]store.ListingPoint, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.structured_filter")
	defer span.End()
	result, err := r.structuredBreaker.Execute(func() (interface{}, error) {
		return r.listings.QueryByDomainOrCategory(ctx, intent, terms)
	})
	if err != nil {
		return nil, wrapBreakerErr(err)
	}
	return result.([]store.ListingPoint), nil
}

// EmbedQuery runs embedding inference behind the embed circuit
// breaker. The embedder is passed per call rather than held, so a
// hot-swapped embedder takes effect immediately for both retrieval and
// ranking.
func (r *Retriever) EmbedQuery(ctx context.Context, embedder embed.Embedder, text string) (embed.Vector, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.embed_inference")
	defer span.End()
	result, err := r.embedBreaker.Execute(func() (interface{}, error) {
		return embedder.Embed(ctx, text)
	})
	if err != nil {
		return nil, wrapBreakerErr(err)
	}
	return result.(embed.Vector), nil
}

func (r *Retriever) runDense(ctx context.Context, intent domain.Intent, query embed.Vector, terms []string, limit int) ([]store.VectorPoint, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.dense_filter")
	defer span.End()
	result, err := r.denseBreaker.Execute(func() (interface{}, error) {
		return r.vectors.Search(ctx, intent, query, terms, limit)
	})
	if err != nil {
		return nil, wrapBreakerErr(err)
	}
	return result.([]store.VectorPoint), nil
}

// retrievalTerms picks the set the structured filter's domain/category
// disjunction runs over: domain for product/service, category for
// mutual, mirroring the matcher's own domain/category gate.
func retrievalTerms(l domain.Listing) []string {
	if l.Intent == domain.IntentMutual {
		return l.CategorySlice()
	}
	return l.DomainSlice()
}

func wrapBreakerErr(err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return matcherr.Retrieval("circuit breaker open, refusing call", err)
	}
	return matcherr.Retrieval("retrieval I/O call failed", err)
}
