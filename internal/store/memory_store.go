package store

import (
	"context"
	"sort"
	"sync"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/rank"
)

// MemoryListingStore is an in-process ListingStore, used by tests and
// by the cmd/server demo outside the production environment. The
// same id overwrites on upsert.
type MemoryListingStore struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

func NewMemoryListingStore() *MemoryListingStore {
	return &MemoryListingStore{listings: make(map[string]domain.Listing)}
}

func (s *MemoryListingStore) Upsert(ctx context.Context, l domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = l
	return nil
}

func (s *MemoryListingStore) Get(ctx context.Context, id string) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return domain.Listing{}, matcherr.Retrieval("listing not found: "+id, nil)
	}
	return l, nil
}

func (s *MemoryListingStore) QueryByDomainOrCategory(ctx context.Context, intent domain.Intent, terms []string) ([]ListingPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(terms))
	for _, t := range terms {
		wanted[t] = true
	}
	var out []ListingPoint
	for _, l := range s.listings {
		if l.Intent != intent {
			continue
		}
		var set []string
		if intent == domain.IntentMutual {
			set = l.CategorySlice()
		} else {
			set = l.DomainSlice()
		}
		if intersectsAny(set, wanted) {
			out = append(out, ListingPoint{ID: l.ID, Intent: l.Intent, Domain: l.DomainSlice(), Category: l.CategorySlice()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func intersectsAny(set []string, wanted map[string]bool) bool {
	for _, s := range set {
		if wanted[s] {
			return true
		}
	}
	return false
}

// MemoryVectorStore is a brute-force cosine-similarity VectorStore:
// an in-process index serving the retriever's dense filter and the
// ranker's embedding fetch. A dedicated vector database slots in
// behind the same port.
type MemoryVectorStore struct {
	mu     sync.RWMutex
	points map[domain.Intent]map[string]VectorPoint
}

func NewMemoryVectorStore() *MemoryVectorStore {
	return &MemoryVectorStore{points: make(map[domain.Intent]map[string]VectorPoint)}
}

func (s *MemoryVectorStore) Upsert(ctx context.Context, p VectorPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.points[p.Intent] == nil {
		s.points[p.Intent] = make(map[string]VectorPoint)
	}
	s.points[p.Intent][p.ID] = p
	return nil
}

func (s *MemoryVectorStore) Search(ctx context.Context, intent domain.Intent, query embed.Vector, terms []string, limit int) ([]VectorPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(terms))
	for _, t := range terms {
		wanted[t] = true
	}

	type scored struct {
		p     VectorPoint
		score float64
	}
	var candidates []scored
	for _, p := range s.points[intent] {
		set := p.Domain
		if intent == domain.IntentMutual {
			set = p.Category
		}
		if len(wanted) > 0 && !intersectsAny(set, wanted) {
			continue
		}
		candidates = append(candidates, scored{p: p, score: rank.CosineSimilarity(query, p.Vector)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].p.ID < candidates[j].p.ID
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]VectorPoint, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.p)
	}
	return out, nil
}

func (s *MemoryVectorStore) Fetch(ctx context.Context, intent domain.Intent, id string) (embed.Vector, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.points[intent][id]
	if !ok {
		return nil, false, nil
	}
	return p.Vector, true, nil
}
