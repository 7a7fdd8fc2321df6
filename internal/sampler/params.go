package sampler

import (
	"maps"
	"slices"
)

// MaxAttempts bounds how many vectors SampleParams draws before falling back.
const MaxAttempts = 100

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Midpoint returns floor((Min+Max)/2).
func (r Range) Midpoint() int {
	sum := r.Min + r.Max
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Params maps parameter names to sampled values.
type Params map[string]int

// Constraint accepts or rejects a sampled parameter vector.
type Constraint func(Params) bool

// SampleParams draws one value per range, retrying up to MaxAttempts times
// until constraint accepts the vector. Keys are drawn in sorted order so a
// seeded Source yields reproducible vectors.
//
// When no vector satisfies the constraint, every parameter is set to its
// range midpoint and ok is false. The fallback ignores the constraint; it is a
// last resort, not a correctness guarantee.
func SampleParams(src Source, ranges map[string]Range, constraint Constraint) (p Params, ok bool) {
	keys := slices.Sorted(maps.Keys(ranges))

	for range MaxAttempts {
		p = make(Params, len(ranges))
		for _, k := range keys {
			r := ranges[k]
			p[k] = Between(src, r.Min, r.Max)
		}
		if constraint == nil || constraint(p) {
			return p, true
		}
	}

	p = make(Params, len(ranges))
	for _, k := range keys {
		p[k] = ranges[k].Midpoint()
	}
	return p, false
}
