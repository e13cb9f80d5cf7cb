package match

import "strings"

// LocationPredicate interprets a categorical location value according
// to location_mode. This interface lets a caller substitute a richer
// geocoding-based implementation without touching the matcher; any
// replacement must preserve monotonicity — a refinement of the
// candidate's location cannot weaken the query's exclusion.
type LocationPredicate interface {
	// Matches reports whether candidateValue satisfies requiredValue
	// under the given mode.
	Matches(mode string, candidateValue, requiredValue string) bool
}

// DefaultLocationPredicate is the built-in interpretation:
// normalized-token overlap for near_me, substring containment for
// explicit/target_only, endpoint-overlap disjunction for route, and
// unconditional pass for global.
type DefaultLocationPredicate struct{}

func (DefaultLocationPredicate) Matches(mode, candidateValue, requiredValue string) bool {
	switch mode {
	case "near_me":
		return tokenOverlap(candidateValue, requiredValue)
	case "explicit", "target_only":
		return strings.Contains(candidateValue, requiredValue) || strings.Contains(requiredValue, candidateValue)
	case "route":
		return routeEndpointOverlap(candidateValue, requiredValue)
	case "global":
		return true
	default:
		return candidateValue == requiredValue
	}
}

func tokenOverlap(a, b string) bool {
	ta := tokenSet(a)
	tb := tokenSet(b)
	for t := range ta {
		if tb[t] {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ReplaceAll(s, "-", " ")) {
		out[tok] = true
	}
	return out
}

// routeEndpointOverlap treats a route value as a "start>end"-shaped
// string and reports whether either listing's endpoints intersect the
// other's. A disjunction over endpoints, not a full path-overlap
// computation.
func routeEndpointOverlap(a, b string) bool {
	ea := routeEndpoints(a)
	eb := routeEndpoints(b)
	for _, x := range ea {
		for _, y := range eb {
			if x == y {
				return true
			}
		}
	}
	return false
}

func routeEndpoints(s string) []string {
	parts := strings.Split(s, ">")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
