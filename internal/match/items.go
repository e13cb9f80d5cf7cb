package match

import (
	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/kernel"
)

// itemsGate requires every item in A.items to be covered by at least
// one candidate item in B.items. Empty A.items is vacuously satisfied;
// empty B.items with non-empty A.items fails; a candidate item may
// cover more than one required item (no bipartite-assignment
// constraint). Skipped entirely for mutual intent.
func (m *Matcher) itemsGate(a, b domain.Listing) bool {
	if len(a.Items) == 0 {
		return true
	}
	if len(b.Items) == 0 {
		return false
	}
	for _, required := range a.Items {
		if !m.itemCovered(required, b.Items) {
			return false
		}
	}
	return true
}

// itemCovered reports whether some candidate item satisfies all of:
// type equality, categorical subset under implication, min/max/range
// numeric satisfaction, and item_exclusions disjoint from the
// candidate's flattened strings.
func (m *Matcher) itemCovered(required domain.Item, candidates []domain.Item) bool {
	for _, c := range candidates {
		if required.Type != c.Type {
			continue
		}
		if !kernel.CategoricalSubset(required.Categorical, c.Categorical, m.implies) {
			continue
		}
		if !kernel.SatisfiesNumeric(required.AsConstraint(), c.AsConstraint()) {
			continue
		}
		if !kernel.ExclusionDisjoint(required.ItemExclusions, c.FlattenStrings()) {
			continue
		}
		return true
	}
	return false
}
