package main

import "image/color"

type gridOffset struct {
	dx int
	dy int
}

// Element markers are stamped straight into the field pixels: a solid core
// and a thin halo at the hit-test radius.
var (
	elementFootprint = precomputeFootprint(0, elementRadius/2)
	haloFootprint    = precomputeFootprint(elementRadius-2, elementRadius)
)

// precomputeFootprint lists the pixel offsets whose distance from the centre
// lies in [inner, outer].
func precomputeFootprint(inner, outer int) []gridOffset {
	var footprint []gridOffset
	lo, hi := inner*inner, outer*outer
	for y := -outer; y <= outer; y++ {
		for x := -outer; x <= outer; x++ {
			if d := x*x + y*y; d >= lo && d <= hi {
				footprint = append(footprint, gridOffset{dx: x, dy: y})
			}
		}
	}
	return footprint
}

// stampFootprint paints footprint centred on (cx, cy).
func stampFootprint(f *fieldBuffer, footprint []gridOffset, cx, cy int, clr color.RGBA) {
	for _, o := range footprint {
		f.setPixel(cx+o.dx, cy+o.dy, clr)
	}
}
