package array

import (
	"math"
	"slices"
)

// ComputePhases returns a copy of elements whose phases steer the array toward
// target. Positions are never modified and the input slice is not mutated.
//
// The element with the smallest projection onto the centroid->target
// direction is the 0 degree reference; every other element is advanced by its
// extra projected path length, one wavelength being 360 degrees.
//
// A nil target, an empty array or a target sitting on the centroid leave the
// phases as they are.
func ComputePhases(elements []Element, target *Point) []Element {
	out := slices.Clone(elements)
	if target == nil || len(elements) == 0 {
		return out
	}
	c := Centroid(elements)
	dir, ok := target.Sub(c).Normalize()
	if !ok {
		return out
	}

	proj := make([]float64, len(elements))
	ref := math.Inf(1)
	for i, e := range elements {
		proj[i] = e.Pos().Sub(c).Dot(dir)
		if proj[i] < ref {
			ref = proj[i]
		}
	}
	for i := range out {
		out[i].Phase = pathPhase(proj[i] - ref)
	}
	return out
}

// pathPhase converts a path length in wavelengths into degrees in [0, 360).
func pathPhase(wavelengths float64) float64 {
	return wrapDegrees(math.Mod(wavelengths, 1)*360 + 360)
}

// ReferenceIndex returns the index of the back-most element for target, the
// one ComputePhases assigns 0 degrees. ok is false whenever ComputePhases
// would leave the phases untouched.
func ReferenceIndex(elements []Element, target *Point) (idx int, ok bool) {
	if target == nil || len(elements) == 0 {
		return 0, false
	}
	c := Centroid(elements)
	dir, ok := target.Sub(c).Normalize()
	if !ok {
		return 0, false
	}
	best := math.Inf(1)
	for i, e := range elements {
		if p := e.Pos().Sub(c).Dot(dir); p < best {
			best = p
			idx = i
		}
	}
	return idx, true
}
