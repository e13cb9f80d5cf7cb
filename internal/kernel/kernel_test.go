package kernel

import (
	"testing"

	"github.com/brain2/matchcore/internal/domain"
)

func TestSatisfiesMinMax(t *testing.T) {
	r := domain.UnboundedMin(4.0)
	if !SatisfiesMin(4.0, r) {
		t.Fatal("4.0 should satisfy min 4.0")
	}
	if SatisfiesMin(4.1, r) {
		t.Fatal("unbounded-max range with lo=4.0 should not satisfy min 4.1")
	}

	r2 := domain.UnboundedMax(100000)
	if !SatisfiesMax(100000, r2) {
		t.Fatal("100000 should satisfy max 100000")
	}
}

func TestRangeContains(t *testing.T) {
	outer := domain.Range{Lo: 256, Hi: 256}
	inner := domain.Range{Lo: 256, Hi: 256}
	if !RangeContains(outer, inner) {
		t.Fatal("exact range should contain itself")
	}
	if RangeContains(outer, domain.Range{Lo: 255, Hi: 256}) {
		t.Fatal("wider inner range should not be contained")
	}
}

func TestSatisfiesNumeric_VacuousTrue(t *testing.T) {
	empty := domain.NewConstraint()
	candidate := domain.NewConstraint()
	if !SatisfiesNumeric(empty, candidate) {
		t.Fatal("empty required numeric constraint must vacuously pass")
	}
}

func TestSatisfiesNumeric_AbsentAttributeFails(t *testing.T) {
	required := domain.NewConstraint()
	required.Min["rating"] = 4.0
	candidate := domain.NewConstraint()
	if SatisfiesNumeric(required, candidate) {
		t.Fatal("required attribute absent from candidate must fail")
	}
}

func TestSatisfiesNumeric_UnboundedComparisons(t *testing.T) {
	required := domain.NewConstraint()
	required.Max["price"] = 100000
	candidate := domain.NewConstraint()
	candidate.Min["price"] = 50000 // (50000, +Inf)
	if SatisfiesNumeric(required, candidate) {
		t.Fatal("candidate with unbounded-above price must not satisfy a max")
	}
	candidate2 := domain.NewConstraint()
	candidate2.Range["price"] = domain.Range{Lo: 95000, Hi: 95000}
	if !SatisfiesNumeric(required, candidate2) {
		t.Fatal("exact 95000 should satisfy max 100000")
	}
}

func TestCategoricalSubset_Vacuous(t *testing.T) {
	if !CategoricalSubset(nil, map[string]string{"brand": "apple"}, nil) {
		t.Fatal("empty required categorical must vacuously pass")
	}
}

func TestCategoricalSubset_Implication(t *testing.T) {
	implies := func(c, r string) bool { return c == "smartphone" && r == "phone" }
	required := map[string]string{"type": "phone"}
	candidate := map[string]string{"type": "smartphone"}
	if !CategoricalSubset(required, candidate, implies) {
		t.Fatal("implication should let smartphone satisfy required phone")
	}
	if CategoricalSubset(required, map[string]string{"type": "laptop"}, implies) {
		t.Fatal("laptop should not satisfy required phone")
	}
}

func TestCategoricalSubset_MissingKeyFails(t *testing.T) {
	required := map[string]string{"brand": "apple"}
	if CategoricalSubset(required, map[string]string{}, nil) {
		t.Fatal("missing required key must fail")
	}
}

func TestExclusionDisjoint(t *testing.T) {
	excl := map[string]struct{}{"dealer": {}, "agent": {}}
	if !ExclusionDisjoint(excl, []string{"individual", "cash"}) {
		t.Fatal("disjoint values must pass")
	}
	if ExclusionDisjoint(excl, []string{"individual", "dealer"}) {
		t.Fatal("overlapping value must fail")
	}
	if !ExclusionDisjoint(nil, []string{"anything"}) {
		t.Fatal("empty exclusion set must always pass")
	}
}
