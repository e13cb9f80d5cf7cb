// Package store defines the ListingStore and VectorStore ports the
// core queries abstractly, plus the DynamoDB-backed ListingStore and
// the in-process implementations of both.
package store

import (
	"context"
	"time"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
)

// ListingPoint is one payload-filterable point the structured filter
// scans: same-intent candidates whose domain/category intersects the
// query's.
type ListingPoint struct {
	ID       string
	Intent   domain.Intent
	Domain   []string
	Category []string
}

// ListingStore is the listing store keyed by intent: primary key
// listing id, canonical Listing as an opaque payload, plus indexed
// domain/category columns for the structured filter.
type ListingStore interface {
	// Upsert persists the canonical Listing, overwriting any existing
	// row with the same id.
	Upsert(ctx context.Context, l domain.Listing) error
	// Get fetches a previously-ingested canonical Listing by id.
	Get(ctx context.Context, id string) (domain.Listing, error)
	// QueryByDomainOrCategory returns same-intent candidates whose
	// domain/category set intersects any of the given terms.
	QueryByDomainOrCategory(ctx context.Context, intent domain.Intent, terms []string) ([]ListingPoint, error)
}

// VectorPoint is one point in a vector collection: the listing id, its
// dense vector, and the payload fields search filters on.
type VectorPoint struct {
	ID        string
	Vector    embed.Vector
	Intent    domain.Intent
	Domain    []string
	Category  []string
	CreatedAt time.Time
}

// VectorStore holds one collection per intent, queried by cosine
// similarity with payload filtering on intent and domain/category.
type VectorStore interface {
	// Upsert writes or overwrites a point.
	Upsert(ctx context.Context, p VectorPoint) error
	// Search returns the closest points to query within the given
	// intent's collection, additionally constrained to points whose
	// domain/category intersects terms (disjunctive any-of).
	Search(ctx context.Context, intent domain.Intent, query embed.Vector, terms []string, limit int) ([]VectorPoint, error)
	// Fetch retrieves a single point's stored vector, used by the
	// ranker to score survivors. A missing point returns ok=false, not
	// an error — the ranker drops it with a report, not a failure.
	Fetch(ctx context.Context, intent domain.Intent, id string) (embed.Vector, bool, error)
}
