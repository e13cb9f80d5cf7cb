// Package matchcore is the public façade over the matching engine: the
// types an embedding application needs to ingest listings and run
// queries, re-exported from the internal packages that implement them.
package matchcore

import (
	"time"

	"go.uber.org/zap"

	"github.com/brain2/matchcore/internal/core"
	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/implication"
	"github.com/brain2/matchcore/internal/normalize"
	"github.com/brain2/matchcore/internal/rank"
	"github.com/brain2/matchcore/internal/store"
)

// Core is the engine façade: Ingest and Query.
type Core = core.Core

// Deps bundles the collaborators NewCore wires together.
type Deps = core.Deps

// RawListing is the loosely-typed input shape the normalizer accepts.
type RawListing = normalize.RawListing

// RawItem is one element of a raw listing's items array.
type RawItem = normalize.RawItem

// RankedResult is one element of Query's output.
type RankedResult = core.RankedResult

// Intent is the nature of a listing's interaction.
type Intent = domain.Intent

const (
	IntentProduct = domain.IntentProduct
	IntentService = domain.IntentService
	IntentMutual  = domain.IntentMutual
)

// NewCore wires the engine from explicit collaborators.
func NewCore(d Deps) (*Core, error) { return core.NewCore(d) }

// ImplicationEdge is one direct term implication.
type ImplicationEdge = implication.Edge

// NewImplicationGraph builds the closed term-implication relation from
// direct edges.
func NewImplicationGraph(edges []ImplicationEdge) (*implication.Graph, error) {
	return implication.New(edges)
}

// NewInMemory assembles a fully in-process engine: memory-backed
// listing and vector stores, a feature-hashing embedder of the given
// dimension, and the default weight tables. Suitable for tests and
// small embedded deployments; production callers wire Deps themselves.
func NewInMemory(dim int, graph *implication.Graph, logger *zap.Logger) (*Core, error) {
	return core.NewCore(core.Deps{
		Listings:       store.NewMemoryListingStore(),
		Vectors:        store.NewMemoryVectorStore(),
		Implication:    graph,
		Embedder:       embed.NewHashingEmbedder(dim),
		Weights:        rank.DefaultWeights(),
		Logger:         logger,
		RetrievalLimit: 200,
		BreakerTimeout: 30 * time.Second,
	})
}
