// Package array models a planar array of isotropic point radiators measured
// in wavelengths: steering phases, far-field gain patterns and the animated
// near-field interference used for visualization.
package array

import "math"

// Point is a position in the array plane, in wavelengths.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Element is a single radiator. Phase is in degrees and kept in [0, 360).
type Element struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Phase float64 `json:"phase" yaml:"phase"`
}

// Pos returns the element position.
func (e Element) Pos() Point { return Point{X: e.X, Y: e.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// minDirectionLen is the shortest vector Normalize accepts.
const minDirectionLen = 1e-12

// Normalize returns p scaled to unit length. ok is false for a zero-length
// vector, in which case the direction is undefined.
func (p Point) Normalize() (Point, bool) {
	l := p.Len()
	if l < minDirectionLen || math.IsNaN(l) || math.IsInf(l, 0) {
		return Point{}, false
	}
	return Point{X: p.X / l, Y: p.Y / l}, true
}

// Centroid returns the mean position of elements, or the origin when there
// are none.
func Centroid(elements []Element) Point {
	if len(elements) == 0 {
		return Point{}
	}
	var c Point
	for _, e := range elements {
		c.X += e.X
		c.Y += e.Y
	}
	n := float64(len(elements))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Bearing returns the unit vector for a compass angle in degrees: 0 points
// along +Y ("north") and angles grow clockwise, so 90 points along +X.
func Bearing(deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: math.Sin(rad), Y: math.Cos(rad)}
}

// wrapUnit folds v into [0, 1).
func wrapUnit(v float64) float64 {
	f := math.Mod(v, 1)
	if f < 0 {
		f++
	}
	if f >= 1 {
		f = 0
	}
	return f
}

// wrapDegrees folds v into [0, 360).
func wrapDegrees(v float64) float64 {
	d := math.Mod(math.Mod(v, 360)+360, 360)
	if d >= 360 {
		d = 0
	}
	return d
}
