package gradkit

import (
	"math"
	"sort"
)

// DefaultMidpoint is the neutral midpoint bias: the visual centre of a
// segment sits halfway between its two stops.
const DefaultMidpoint = 0.5

// ColorStop represents a colour at a specific position in a gradient.
// All components are in the range [0, 1].
type ColorStop struct {
	Position float64 // Position in gradient, 0.0 to 1.0
	Red      float64
	Green    float64
	Blue     float64
	Alpha    float64

	// Midpoint biases the segment between this stop and its neighbour.
	// Photoshop stores it on the stop that ends the segment; Affinity on
	// the stop that starts it.
	Midpoint float64
}

// Gradient is a named, ordered sequence of colour stops.
//
// Within Stops, Position is non-decreasing and the first and last stops
// sit at 0 and 1.
type Gradient struct {
	Name  string
	Stops []ColorStop

	// Group is the preset folder the gradient was saved in, if any.
	Group string
}

// GroupSummary counts the gradients that belong to one group.
type GroupSummary struct {
	Name  string
	Count int
}

// UngroupedName labels gradients without a group in a group summary.
const UngroupedName = "(Ungrouped)"

// Collection holds the gradients read from, or destined for, one file.
type Collection struct {
	Name      string
	Gradients []Gradient

	// Groups summarizes group membership in first-seen order. Empty when
	// the source carried no grouping information.
	Groups []GroupSummary
}

// SummarizeGroups returns the groups of gs in first-seen order together
// with their member counts. Gradients without a group are counted under
// UngroupedName.
func SummarizeGroups(gs []Gradient) []GroupSummary {
	var out []GroupSummary
	index := make(map[string]int)
	for _, g := range gs {
		name := g.Group
		if name == "" {
			name = UngroupedName
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, GroupSummary{Name: name})
		}
		out[i].Count++
	}
	return out
}

// SortStops sorts stops by position in place, keeping the relative order
// of stops that share a position.
func SortStops(stops []ColorStop) {
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].Position < stops[j].Position
	})
}

// EnsureEndpoints returns stops with a stop at position 0 and one at
// position 1. Missing endpoints are synthesized by duplicating the first
// or last stop. stops must be sorted; an empty slice is returned as is.
func EnsureEndpoints(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}
	if first := stops[0]; first.Position != 0 {
		first.Position = 0
		stops = append([]ColorStop{first}, stops...)
	}
	if last := stops[len(stops)-1]; last.Position != 1 {
		last.Position = 1
		stops = append(stops, last)
	}
	return stops
}

// clamp01 clamps a value to [0, 1] range. NaN and infinities map to 0.
func clamp01(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
