package gradkit

import (
	"math"
	"sort"
)

// RGBA is a sampled colour. Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Sampler evaluates a sorted stop sequence at position t.
//
// The grd decoder calls a Sampler to merge a colour track and an
// independent transparency track into one stop list.
type Sampler func(stops []ColorStop, t float64) RGBA

// Sample returns the colour at t using linear interpolation biased by
// stop midpoints. The segment between stops i and i+1 is governed by the
// midpoint stored on stop i+1, which is how Photoshop reads it.
//
// Handles edge cases: empty stops, single stop, out-of-range t.
// When t falls exactly on a stop, that stop's colour is returned unchanged.
func Sample(stops []ColorStop, t float64) RGBA {
	return sample(stops, t, true)
}

// SampleLinear is like Sample but ignores midpoints.
func SampleLinear(stops []ColorStop, t float64) RGBA {
	return sample(stops, t, false)
}

func sample(stops []ColorStop, t float64, biased bool) RGBA {
	// Edge case: no stops
	if len(stops) == 0 {
		return RGBA{A: 1}
	}

	// Edge case: single stop
	if len(stops) == 1 {
		return stopColor(stops[0])
	}

	if t <= stops[0].Position {
		return stopColor(stops[0])
	}
	if t >= stops[len(stops)-1].Position {
		return stopColor(stops[len(stops)-1])
	}

	// First stop at or after t.
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Position >= t
	})
	if stops[idx].Position == t {
		return stopColor(stops[idx])
	}

	s1 := stops[idx-1]
	s2 := stops[idx]

	// Avoid division by zero for coincident stops
	if s2.Position == s1.Position {
		return stopColor(s1)
	}

	localT := (t - s1.Position) / (s2.Position - s1.Position)
	if biased {
		localT = applyMidpoint(localT, s2.Midpoint)
	}
	return lerp(stopColor(s1), stopColor(s2), localT)
}

// applyMidpoint remaps u so that u == m maps to 0.5, keeping 0 and 1 fixed.
func applyMidpoint(u, m float64) float64 {
	if m <= 0 || m >= 1 || m == DefaultMidpoint {
		return u
	}
	if u < m {
		return 0.5 * u / m
	}
	return 0.5 + 0.5*(u-m)/(1-m)
}

func stopColor(s ColorStop) RGBA {
	return RGBA{R: s.Red, G: s.Green, B: s.Blue, A: s.Alpha}
}

// lerp performs linear interpolation between two colours.
func lerp(c1, c2 RGBA, t float64) RGBA {
	t = clamp01(t)
	return RGBA{
		R: c1.R + (c2.R-c1.R)*t,
		G: c1.G + (c2.G-c1.G)*t,
		B: c1.B + (c2.B-c1.B)*t,
		A: c1.A + (c2.A-c1.A)*t,
	}
}

// ColorsEqual reports whether two colours match within epsilon per channel.
func ColorsEqual(c1, c2 RGBA, epsilon float64) bool {
	return math.Abs(c1.R-c2.R) <= epsilon &&
		math.Abs(c1.G-c2.G) <= epsilon &&
		math.Abs(c1.B-c2.B) <= epsilon &&
		math.Abs(c1.A-c2.A) <= epsilon
}
