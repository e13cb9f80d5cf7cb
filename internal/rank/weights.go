package rank

import (
	"fmt"
	"math"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
)

const (
	MethodDense           = "dense"
	MethodKeyword         = "keyword"
	MethodLateInteraction = "late_interaction"
	MethodCrossEncoder    = "cross_encoder"
)

// Weights is a per-intent, per-method RRF weight table. Validated once
// at construction time, never at query time.
type Weights map[string]float64

// DefaultWeights returns the locked weight tables.
func DefaultWeights() map[domain.Intent]Weights {
	return map[domain.Intent]Weights{
		domain.IntentProduct: {MethodDense: 0.35, MethodKeyword: 0.25, MethodLateInteraction: 0.20, MethodCrossEncoder: 0.20},
		domain.IntentService: {MethodDense: 0.35, MethodKeyword: 0.25, MethodLateInteraction: 0.20, MethodCrossEncoder: 0.20},
		domain.IntentMutual:  {MethodDense: 0.50, MethodLateInteraction: 0.20, MethodCrossEncoder: 0.30},
	}
}

// validateWeights enforces: dense always present, every weight
// non-negative, weights for each intent sum to 1 (within epsilon), and
// no keyword weight for mutual.
func validateWeights(tables map[domain.Intent]Weights) error {
	for _, intent := range []domain.Intent{domain.IntentProduct, domain.IntentService, domain.IntentMutual} {
		w, ok := tables[intent]
		if !ok {
			return matcherr.Config(fmt.Sprintf("missing RRF weight table for intent %q", intent), nil)
		}
		if _, ok := w[MethodDense]; !ok {
			return matcherr.Config(fmt.Sprintf("intent %q weight table must include %q", intent, MethodDense), nil)
		}
		if intent == domain.IntentMutual {
			if _, ok := w[MethodKeyword]; ok {
				return matcherr.Config("keyword weight is forbidden for mutual intent", nil)
			}
		}
		var sum float64
		for method, v := range w {
			if v < 0 {
				return matcherr.Config(fmt.Sprintf("negative weight %v for method %q (intent %q)", v, method, intent), nil)
			}
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-6 {
			return matcherr.Config(fmt.Sprintf("weight table for intent %q must sum to 1.0, got %v", intent, sum), nil)
		}
	}
	return nil
}

// renormalize redistributes weight proportionally across the methods
// actually present for a given query; missing methods are elided.
func renormalize(w Weights, present map[string]bool) map[string]float64 {
	var total float64
	for m := range present {
		total += w[m]
	}
	out := make(map[string]float64, len(present))
	if total == 0 {
		return out
	}
	for m := range present {
		out[m] = w[m] / total
	}
	return out
}
