package array

import (
	"iter"
	"math"
)

// RingKind distinguishes wavefront crests from the troughs half a wavelength
// behind them.
type RingKind int

const (
	Crest RingKind = iota
	Trough
)

func (k RingKind) String() string {
	if k == Trough {
		return "trough"
	}
	return "crest"
}

// Ring is one emission circle around an element, radius in wavelengths.
type Ring struct {
	Radius float64
	Kind   RingKind
}

// troughOffset is the distance in wavelengths from a crest back to its trough.
const troughOffset = 0.5

// BaseRadius returns the radius of the innermost crest of element at time,
// in [0, 1). It grows at speed wavelengths per time unit and wraps every
// wavelength.
func BaseRadius(element Element, time, speed float64) float64 {
	return wrapUnit(wrapUnit(time*speed) + element.Phase/360)
}

// CrestRadii yields BaseRadius, BaseRadius+1, ... up to and including
// maxRadius. The sequence can be ranged over any number of times. An
// unbounded maxRadius yields nothing.
func CrestRadii(element Element, time, speed, maxRadius float64) iter.Seq[float64] {
	base := BaseRadius(element, time, speed)
	return func(yield func(float64) bool) {
		if math.IsInf(maxRadius, 1) {
			return
		}
		for k := 0; ; k++ {
			r := base + float64(k)
			if !(r <= maxRadius) {
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}

// TroughRadii yields the crest radii shifted inward by half a wavelength,
// skipping any that are not positive.
func TroughRadii(element Element, time, speed, maxRadius float64) iter.Seq[float64] {
	crests := CrestRadii(element, time, speed, maxRadius)
	return func(yield func(float64) bool) {
		for r := range crests {
			t := r - troughOffset
			if t <= 0 {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Rings yields every crest of element followed by the trough just inside it.
func Rings(element Element, time, speed, maxRadius float64) iter.Seq[Ring] {
	crests := CrestRadii(element, time, speed, maxRadius)
	return func(yield func(Ring) bool) {
		for r := range crests {
			if !yield(Ring{Radius: r, Kind: Crest}) {
				return
			}
			if t := r - troughOffset; t > 0 {
				if !yield(Ring{Radius: t, Kind: Trough}) {
					return
				}
			}
		}
	}
}
