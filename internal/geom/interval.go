// Package geom provides the oriented geometry kernel: frames, projections,
// line/box intersection, and 1D interval helpers. Everything here is a pure
// function over value types; nothing allocates persistent state.
package geom

import "math"

// Interval is a closed 1D range [Min, Max].
type Interval struct {
	Min float64
	Max float64
}

// Length returns Max-Min, or 0 for an inverted interval.
func (iv Interval) Length() float64 {
	if iv.Max < iv.Min {
		return 0
	}
	return iv.Max - iv.Min
}

// Gap returns the separation between two intervals, 0 when they overlap.
func (iv Interval) Gap(o Interval) float64 {
	if iv.Min > o.Max {
		return iv.Min - o.Max
	}
	if o.Min > iv.Max {
		return o.Min - iv.Max
	}
	return 0
}

// Overlap returns the shared extent of two intervals, clamped to 0.
func (iv Interval) Overlap(o Interval) float64 {
	return math.Max(0, math.Min(iv.Max, o.Max)-math.Max(iv.Min, o.Min))
}

// Intersect returns the shared interval and whether it is non-empty.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	out := Interval{Min: math.Max(iv.Min, o.Min), Max: math.Min(iv.Max, o.Max)}
	return out, out.Max >= out.Min
}

// Mid returns the interval midpoint.
func (iv Interval) Mid() float64 { return (iv.Min + iv.Max) / 2 }
