package rank

import (
	"fmt"
	"sort"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/matcherr"
)

// rrfK is the reciprocal-rank-fusion constant.
const rrfK = 60

// Survivor is one matcher survivor handed to the ranker: its stored
// dense vector (nil means the embedding is missing and the survivor is
// dropped with a report) plus whatever optional per-method scores the
// caller supplies (keyword/late-interaction/cross-encoder).
type Survivor struct {
	ListingID        string
	Vector           embed.Vector
	AdditionalScores map[string]float64
}

// Result is one fused ranking entry.
type Result struct {
	ListingID       string
	Rank            int
	FinalScore      float64
	PerMethodScores map[string]float64
}

// Ranker fuses whichever per-method rankings are present for a query
// via RRF, using the locked weight tables validated at construction.
type Ranker struct {
	weights map[domain.Intent]Weights
}

// New validates the given weight tables and constructs a Ranker. Use
// DefaultWeights() for the locked tables, or supply your own —
// validation is identical either way.
func New(weights map[domain.Intent]Weights) (*Ranker, error) {
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	return &Ranker{weights: weights}, nil
}

// Dropped reports the listing ids dropped from ranking because they
// had no stored embedding — a degradation report, not a filter.
type Dropped struct {
	ListingID string
}

// Rank computes per-method rankings and fuses them. It never filters
// based on match quality: every survivor with a usable embedding
// appears in the output; only embedding-missing survivors are dropped,
// and that drop is reported separately rather than silently
// re-admitted.
func (r *Ranker) Rank(intent domain.Intent, query embed.Vector, survivors []Survivor) ([]Result, []Dropped, error) {
	weights, err := r.weightsFor(intent)
	if err != nil {
		return nil, nil, err
	}

	usable := make([]Survivor, 0, len(survivors))
	var dropped []Dropped
	for _, s := range survivors {
		if len(s.Vector) == 0 {
			dropped = append(dropped, Dropped{ListingID: s.ListingID})
			continue
		}
		usable = append(usable, s)
	}

	denseScore := make(map[string]float64, len(usable))
	for _, s := range usable {
		denseScore[s.ListingID] = CosineSimilarity(query, s.Vector)
	}

	present := map[string]bool{MethodDense: true}
	if intent != domain.IntentMutual {
		present[MethodKeyword] = methodPresent(usable, MethodKeyword)
	}
	present[MethodLateInteraction] = methodPresent(usable, MethodLateInteraction)
	present[MethodCrossEncoder] = methodPresent(usable, MethodCrossEncoder)
	for m, ok := range present {
		if !ok {
			delete(present, m)
		}
	}

	effectiveWeights := renormalize(weights, present)

	ranks := make(map[string]map[string]int, len(present))
	for method := range present {
		ranks[method] = rankByMethod(usable, method, denseScore)
	}

	results := make([]Result, 0, len(usable))
	for _, s := range usable {
		perMethod := make(map[string]float64, len(present))
		var fused float64
		for method, w := range effectiveWeights {
			rnk := ranks[method][s.ListingID]
			fused += w / float64(rrfK+rnk)
			perMethod[method] = scoreFor(method, s, denseScore)
		}
		results = append(results, Result{ListingID: s.ListingID, FinalScore: fused, PerMethodScores: perMethod})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].ListingID < results[j].ListingID
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, dropped, nil
}

func (r *Ranker) weightsFor(intent domain.Intent) (Weights, error) {
	w, ok := r.weights[intent]
	if !ok {
		return nil, matcherr.Config(fmt.Sprintf("no RRF weight table configured for intent %q", intent), nil)
	}
	return w, nil
}

func methodPresent(survivors []Survivor, method string) bool {
	if len(survivors) == 0 {
		return false
	}
	for _, s := range survivors {
		if _, ok := s.AdditionalScores[method]; !ok {
			return false
		}
	}
	return true
}

func scoreFor(method string, s Survivor, dense map[string]float64) float64 {
	if method == MethodDense {
		return dense[s.ListingID]
	}
	return s.AdditionalScores[method]
}

// rankByMethod converts a method's raw per-candidate scores into
// 1-indexed, stable-tie rankings.
func rankByMethod(survivors []Survivor, method string, dense map[string]float64) map[string]int {
	type scored struct {
		id    string
		score float64
	}
	scoredList := make([]scored, 0, len(survivors))
	for _, s := range survivors {
		scoredList = append(scoredList, scored{id: s.ListingID, score: scoreFor(method, s, dense)})
	}
	sort.SliceStable(scoredList, func(i, j int) bool {
		if scoredList[i].score != scoredList[j].score {
			return scoredList[i].score > scoredList[j].score
		}
		return scoredList[i].id < scoredList[j].id
	})
	out := make(map[string]int, len(scoredList))
	for i, s := range scoredList {
		out[s.id] = i + 1
	}
	return out
}
