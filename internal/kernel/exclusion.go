package kernel

// ExclusionDisjoint fails exactly when some flattened candidate-side
// string value appears in the exclusion set. Implication is never
// consulted here; exclusions are always literal.
func ExclusionDisjoint(exclusions map[string]struct{}, values []string) bool {
	if len(exclusions) == 0 {
		return true
	}
	for _, v := range values {
		if _, banned := exclusions[v]; banned {
			return false
		}
	}
	return true
}
