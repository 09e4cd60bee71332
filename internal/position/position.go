// Package position computes fractional sort keys for lists and cards.
//
// New entries are appended at max+1. Drops between two neighbours take
// their midpoint, so a reorder normally touches only the moved entry.
// Repeated drops into the same slot halve the gap each time; once a gap
// falls to Epsilon the caller renumbers the container to 0..n-1.
package position

import "math"

// Epsilon is the smallest gap tolerated between neighbouring positions.
const Epsilon = 1e-9

// Next returns the append position for a container: max+1, or 0 when empty.
func Next(positions []float64) float64 {
	if len(positions) == 0 {
		return 0
	}
	highest := math.Inf(-1)
	for _, p := range positions {
		highest = math.Max(highest, p)
	}
	return highest + 1
}

// Between returns the midpoint of a and b.
func Between(a, b float64) float64 {
	return (a + b) / 2
}

// Head returns the position in front of the first entry.
func Head(first float64) float64 {
	return first / 2
}

// Tail returns the position after the last entry.
func Tail(last float64) float64 {
	return last + 1
}

// At returns the position for inserting at index into sorted, which must be
// ascending and must not contain the entry being placed. index is clamped to
// [0, len(sorted)]. ok is false when the result would not sit strictly
// between its neighbours by more than Epsilon; the caller should then
// renumber with Renumber.
func At(sorted []float64, index int) (pos float64, ok bool) {
	n := len(sorted)
	if n == 0 {
		return 0, true
	}
	index = max(0, min(index, n))

	switch index {
	case 0:
		pos = Head(sorted[0])
		return pos, sorted[0]-pos > Epsilon
	case n:
		pos = Tail(sorted[n-1])
		return pos, pos-sorted[n-1] > Epsilon
	default:
		before, after := sorted[index-1], sorted[index]
		pos = Between(before, after)
		return pos, pos-before > Epsilon && after-pos > Epsilon
	}
}

// Renumber returns the integer positions 0..n-1.
func Renumber(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Collapsed reports whether any adjacent pair in sorted is closer than Epsilon.
func Collapsed(sorted []float64) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] <= Epsilon {
			return true
		}
	}
	return false
}
