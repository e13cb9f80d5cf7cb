// Package match composes the constraint kernel into the single entry
// point Matches(A, B): a fixed chain of gates evaluated in order,
// short-circuiting on the first gate that fails.
package match

import (
	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/kernel"
)

// pair is the (A, B) argument every gate predicate evaluates. The rule
// set is defined over listing pairs, not single entities, so the gate
// specifications below close over a pair rather than one Listing.
type pair struct {
	a, b domain.Listing
}

// Matcher holds the two collaborators the kernel's categorical and
// location checks need: the implication predicate and the location
// predicate. Both are process-lifetime, read-only, and safe to share
// across concurrent calls. The gate chain is composed once at
// construction as a Specification over pairs.
type Matcher struct {
	implies  kernel.Implies
	location LocationPredicate
	gates    Specification[pair]
}

// New constructs a Matcher. A nil implies defaults to string equality;
// a nil location predicate defaults to DefaultLocationPredicate.
func New(implies kernel.Implies, location LocationPredicate) *Matcher {
	if implies == nil {
		implies = kernel.DefaultImplies
	}
	if location == nil {
		location = DefaultLocationPredicate{}
	}
	m := &Matcher{implies: implies, location: location}

	// And evaluates left-to-right and stops at the first failing gate,
	// so the fixed evaluation order is preserved: intent, then
	// domain/category, then items (product/service only), then
	// other->self, then location.
	m.gates = Rule(func(p pair) bool { return m.intentGate(p.a, p.b) }).
		And(Rule(func(p pair) bool { return m.domainCategoryGate(p.a, p.b) })).
		And(Rule(func(p pair) bool { return p.a.Intent == domain.IntentMutual || m.itemsGate(p.a, p.b) })).
		And(Rule(func(p pair) bool { return m.otherSelfForward(p.a, p.b) })).
		And(Rule(func(p pair) bool { return m.locationGate(p.a, p.b) }))
	return m
}

// Matches decides whether b satisfies every requirement a expresses:
// strict boolean, no scores, no partial-match reasons. For mutual
// intent both directions must pass; the reverse direction is executed
// by running the same gate chain with arguments swapped, not by a
// separate forward/reverse split within one call.
func (m *Matcher) Matches(a, b domain.Listing) bool {
	if !m.unidirectional(a, b) {
		return false
	}
	if a.Intent == domain.IntentMutual {
		return m.unidirectional(b, a)
	}
	return true
}

// unidirectional runs the composed gate chain in one direction only.
// It never itself triggers the mutual reverse check — that is Matches'
// job — so that mutual evaluation is a single pair of unidirectional
// calls rather than unbounded recursion.
func (m *Matcher) unidirectional(a, b domain.Listing) bool {
	return m.gates.IsSatisfiedBy(pair{a: a, b: b})
}

// intentGate requires equal intents, plus inverse subintents for
// product/service and exchange on both sides for mutual.
func (m *Matcher) intentGate(a, b domain.Listing) bool {
	if a.Intent != b.Intent {
		return false
	}
	switch a.Intent {
	case domain.IntentMutual:
		return a.Subintent == domain.SubintentExchange && b.Subintent == domain.SubintentExchange
	default:
		inverse, ok := domain.InverseSubintent(a.Intent, a.Subintent)
		return ok && b.Subintent == inverse
	}
}

// domainCategoryGate requires a non-empty domain intersection for
// product/service, or a non-empty category intersection for mutual.
func (m *Matcher) domainCategoryGate(a, b domain.Listing) bool {
	if a.Intent == domain.IntentMutual {
		return domain.SetsIntersect(a.Category, b.Category)
	}
	return domain.SetsIntersect(a.Domain, b.Domain)
}

// otherSelfForward checks A.other against B.self: what A requires the
// counterparty to be, against what B says it is.
func (m *Matcher) otherSelfForward(a, b domain.Listing) bool {
	return m.constraintSatisfied(a.Other, b.Self, a.OtherExclusions)
}

// constraintSatisfied is the shared shape of every constraint gate:
// categorical subset under implication, numeric satisfaction, and
// exclusion disjointness.
func (m *Matcher) constraintSatisfied(required, candidate domain.Constraint, exclusions map[string]struct{}) bool {
	if !kernel.CategoricalSubset(required.Categorical, candidate.Categorical, m.implies) {
		return false
	}
	if !kernel.SatisfiesNumeric(required, candidate) {
		return false
	}
	return kernel.ExclusionDisjoint(exclusions, candidate.FlattenStrings())
}

// locationGate checks A.location against B's own location constraint
// under the location_mode-aware categorical interpretation, then both
// exclusion directions: A's location exclusions against B's location
// values, and B's location exclusions against A's location values.
// Global mode passes the categorical interpretation unconditionally;
// numeric checks and the literal exclusions still apply.
func (m *Matcher) locationGate(a, b domain.Listing) bool {
	if a.LocationMode != domain.LocationGlobal {
		for k, vr := range a.Location.Categorical {
			vc, ok := b.Location.Categorical[k]
			if !ok {
				return false
			}
			if vc != vr && !m.location.Matches(string(a.LocationMode), vc, vr) && !m.implies(vc, vr) {
				return false
			}
		}
	}
	if !kernel.SatisfiesNumeric(a.Location, b.Location) {
		return false
	}
	if !kernel.ExclusionDisjoint(a.LocationExclusions, b.Location.FlattenStrings()) {
		return false
	}
	if !kernel.ExclusionDisjoint(b.LocationExclusions, a.Location.FlattenStrings()) {
		return false
	}
	return true
}
