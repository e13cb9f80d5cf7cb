package domain

import "math"

// Range is an ordered numeric pair (lo, hi) with lo <= hi. Unbounded
// sides are represented with ±Inf.
type Range struct {
	Lo float64
	Hi float64
}

// UnboundedMin returns the range (m, +Inf) produced by a bare "min" key.
func UnboundedMin(m float64) Range {
	return Range{Lo: m, Hi: math.Inf(1)}
}

// UnboundedMax returns the range (-Inf, M) produced by a bare "max" key.
func UnboundedMax(M float64) Range {
	return Range{Lo: math.Inf(-1), Hi: M}
}

// Valid reports whether lo <= hi, required of every literal range
// value.
func (r Range) Valid() bool {
	return r.Lo <= r.Hi
}

// Exact reports whether r represents a single value (lo == hi).
func (r Range) Exact() bool {
	return r.Lo == r.Hi
}
