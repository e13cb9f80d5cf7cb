// Package kernel holds the pure constraint-evaluation primitives: range
// arithmetic, categorical subset under implication, and exclusion
// disjointness over domain.Range/domain.Constraint values. No I/O, no
// globals, no shared state — every function here is safe to call
// concurrently from any number of goroutines.
package kernel

import "github.com/brain2/matchcore/internal/domain"

// SatisfiesMin reports whether r lies entirely at or above threshold:
// r.Lo >= threshold.
func SatisfiesMin(threshold float64, r domain.Range) bool {
	return r.Lo >= threshold
}

// SatisfiesMax reports whether r lies entirely at or below threshold:
// r.Hi <= threshold.
func SatisfiesMax(threshold float64, r domain.Range) bool {
	return r.Hi <= threshold
}

// RangeContains reports outer.Lo <= inner.Lo && inner.Hi <= outer.Hi,
// used when a required constraint itself is a range rather than a bare
// min/max threshold.
func RangeContains(outer, inner domain.Range) bool {
	return outer.Lo <= inner.Lo && inner.Hi <= outer.Hi
}

// SatisfiesNumeric checks every numeric requirement (min/max/range) the
// required Constraint places on an attribute against the resolved Range
// the candidate constraint exposes for it. A required attribute absent
// from the candidate is false; an attribute the requirement does not
// constrain is vacuously true.
func SatisfiesNumeric(required, candidate domain.Constraint) bool {
	for k, threshold := range required.Min {
		cr, ok := candidate.ExtractRange(k)
		if !ok || !SatisfiesMin(threshold, cr) {
			return false
		}
	}
	for k, threshold := range required.Max {
		cr, ok := candidate.ExtractRange(k)
		if !ok || !SatisfiesMax(threshold, cr) {
			return false
		}
	}
	for k, want := range required.Range {
		cr, ok := candidate.ExtractRange(k)
		if !ok || !RangeContains(want, cr) {
			return false
		}
	}
	return true
}
