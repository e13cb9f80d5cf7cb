// Package core wires the normalizer, matcher, retriever, and ranker
// into the two operations external callers use: Ingest and Query.
// Construction validates every collaborator it can check eagerly; the
// one configuration failure left to request time is an embedder whose
// vectors do not match its own Dimension(), reported as a ConfigError
// by the Ingest or Query call that embeds.
package core

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/implication"
	"github.com/brain2/matchcore/internal/kernel"
	"github.com/brain2/matchcore/internal/match"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/normalize"
	"github.com/brain2/matchcore/internal/observability"
	"github.com/brain2/matchcore/internal/rank"
	"github.com/brain2/matchcore/internal/retrieve"
	"github.com/brain2/matchcore/internal/store"
)

// swappable bundles the two collaborators that may be replaced
// atomically at a quiescent point: the term-implication graph and the
// embedder. Neither is ever mutated in place.
type swappable struct {
	implication *implication.Graph
	embedder    embed.Embedder
}

// Core is the façade external callers use. It holds no other mutable
// state: the listing store, vector store, ranker, and logger are
// fixed for the Core's lifetime, and only the implication
// graph/embedder pair may be hot-swapped.
type Core struct {
	normalizer *normalize.Normalizer
	listings   store.ListingStore
	vectors    store.VectorStore
	retriever  *retrieve.Retriever
	ranker     *rank.Ranker
	tokenizer  *embed.Tokenizer
	location   match.LocationPredicate
	logger     *zap.Logger
	metrics    *observability.Metrics

	live atomic.Pointer[swappable]

	retrievalLimit int
}

// Deps bundles every collaborator NewCore needs. NewCore wraps the
// embedder in embed.DimensionChecked, so every vector it returns is
// checked against Embedder.Dimension(); a mismatch is a ConfigError
// returned from the Ingest or Query call that produced the vector.
type Deps struct {
	Listings       store.ListingStore
	Vectors        store.VectorStore
	Implication    *implication.Graph
	Embedder       embed.Embedder
	Location       match.LocationPredicate
	Weights        map[domain.Intent]rank.Weights
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RetrievalLimit int
	BreakerTimeout time.Duration
}

// NewCore validates every collaborator and wires the pipeline
// together.
func NewCore(d Deps) (*Core, error) {
	if d.Listings == nil || d.Vectors == nil {
		return nil, matcherr.Config("listing store and vector store are required", nil)
	}
	if d.Embedder == nil {
		return nil, matcherr.Config("embedder is required", nil)
	}
	if d.RetrievalLimit <= 0 {
		return nil, matcherr.Config("retrieval limit must be positive", nil)
	}

	ranker, err := rank.New(d.Weights)
	if err != nil {
		return nil, err
	}

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	embedder := embed.DimensionChecked{Embedder: d.Embedder}

	retriever := retrieve.New(d.Listings, d.Vectors, retrieve.Settings{Timeout: d.BreakerTimeout})

	c := &Core{
		normalizer:     normalize.New(),
		listings:       d.Listings,
		vectors:        d.Vectors,
		retriever:      retriever,
		ranker:         ranker,
		tokenizer:      embed.NewTokenizer(),
		location:       d.Location,
		logger:         logger,
		metrics:        d.Metrics,
		retrievalLimit: d.RetrievalLimit,
	}
	c.live.Store(&swappable{implication: d.Implication, embedder: embedder})
	return c, nil
}

func (c *Core) matcher() *match.Matcher {
	live := c.live.Load()
	var implies kernel.Implies
	if live.implication != nil {
		implies = live.implication.AsKernelImplies()
	}
	return match.New(implies, c.location)
}

// Swap atomically replaces the implication graph and/or embedder at a
// quiescent point. Passing nil for either leaves that collaborator
// unchanged.
func (c *Core) Swap(newImplication *implication.Graph, newEmbedder embed.Embedder) {
	current := c.live.Load()
	next := &swappable{implication: current.implication, embedder: current.embedder}
	if newImplication != nil {
		next.implication = newImplication
	}
	if newEmbedder != nil {
		next.embedder = embed.DimensionChecked{Embedder: newEmbedder}
	}
	c.live.Store(next)
}

// Ingest normalizes raw, rejecting on failure, persists the canonical
// form, builds its embedding text, embeds it, and upserts the vector
// store keyed by (intent, listing_id).
func (c *Core) Ingest(ctx context.Context, raw normalize.RawListing) (string, error) {
	listing, err := c.normalizer.Normalize(raw)
	if err != nil {
		c.metrics.RecordIngest(raw.Intent, err)
		return "", err
	}
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}

	if err := c.listings.Upsert(ctx, listing); err != nil {
		c.metrics.RecordIngest(string(listing.Intent), err)
		return "", err
	}

	live := c.live.Load()
	text := embed.BuildText(listing, c.tokenizer)
	vector, err := c.retriever.EmbedQuery(ctx, live.embedder, text)
	if err != nil {
		c.metrics.RecordIngest(string(listing.Intent), err)
		return "", err
	}

	point := store.VectorPoint{
		ID:        listing.ID,
		Vector:    vector,
		Intent:    listing.Intent,
		Domain:    listing.DomainSlice(),
		Category:  listing.CategorySlice(),
		CreatedAt: time.Now().UTC(),
	}
	if err := c.vectors.Upsert(ctx, point); err != nil {
		c.metrics.RecordIngest(string(listing.Intent), err)
		return "", err
	}

	c.metrics.RecordIngest(string(listing.Intent), nil)
	return listing.ID, nil
}

// tokenSet turns text into the term set the keyword-overlap scorer
// compares.
func tokenSet(tk *embed.Tokenizer, text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range tk.SignificantWords(text) {
		out[w] = true
	}
	return out
}

// RankedResult is one element of Query's output.
type RankedResult struct {
	ListingID       string
	Rank            int
	FinalScore      float64
	PerMethodScores map[string]float64
}

// Query normalizes raw, retrieves a bounded candidate set (structured
// + dense), fetches full candidate listings, keeps those the matcher
// accepts, ranks the survivors, and returns the ranked list. For
// product/service queries a keyword-overlap score over the embedding
// texts is supplied alongside the dense method; mutual queries rank on
// dense similarity alone.
func (c *Core) Query(ctx context.Context, raw normalize.RawListing, limit int) ([]RankedResult, error) {
	start := time.Now()
	query, err := c.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > c.retrievalLimit {
		limit = c.retrievalLimit
	}

	live := c.live.Load()
	queryText := embed.BuildText(query, c.tokenizer)
	queryVector, err := c.retriever.EmbedQuery(ctx, live.embedder, queryText)
	if err != nil {
		return nil, err
	}

	candidates, err := c.retriever.Retrieve(ctx, query, queryVector, limit)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordCandidateSetSize(len(candidates))

	m := c.matcher()
	queryTokens := tokenSet(c.tokenizer, queryText)
	survivors := make([]rank.Survivor, 0, len(candidates))
	for _, cand := range candidates {
		listing, err := c.retriever.FetchListing(ctx, cand.ListingID)
		if err != nil {
			return nil, err
		}
		if !m.Matches(query, listing) {
			continue
		}
		vector, ok, err := c.retriever.FetchVector(ctx, listing.Intent, listing.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.metrics.RecordRankingDegradation()
			c.logger.Warn("ranking degradation: missing embedding", zap.String("query_listing_id", query.ID), zap.String("candidate_listing_id", listing.ID))
			continue
		}
		survivor := rank.Survivor{ListingID: listing.ID, Vector: vector}
		if query.Intent != domain.IntentMutual {
			candidateTokens := tokenSet(c.tokenizer, embed.BuildText(listing, c.tokenizer))
			survivor.AdditionalScores = map[string]float64{
				rank.MethodKeyword: rank.JaccardSimilarity(queryTokens, candidateTokens),
			}
		}
		survivors = append(survivors, survivor)
	}

	results, dropped, err := c.ranker.Rank(query.Intent, queryVector, survivors)
	if err != nil {
		return nil, err
	}
	for _, d := range dropped {
		c.metrics.RecordRankingDegradation()
		c.logger.Warn("ranking degradation: dropped from RRF fusion", zap.String("listing_id", d.ListingID))
	}

	c.metrics.RecordQueryLatency(string(query.Intent), time.Since(start))

	out := make([]RankedResult, 0, len(results))
	for _, r := range results {
		out = append(out, RankedResult{ListingID: r.ListingID, Rank: r.Rank, FinalScore: r.FinalScore, PerMethodScores: r.PerMethodScores})
	}
	return out, nil
}
