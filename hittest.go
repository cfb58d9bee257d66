package main

import (
	"math"

	"PAS/internal/array"
)

// elementAt returns the index of the topmost element whose marker covers the
// screen position, or -1.
func (g *Game) elementAt(x, y float64) int {
	for i := len(g.elements) - 1; i >= 0; i-- {
		ex, ey := worldToScreen(g.elements[i].Pos())
		if math.Hypot(x-ex, y-ey) <= elementRadius {
			return i
		}
	}
	return -1
}

// trashRect returns the bottom-right drop area that deletes elements.
func trashRect() (x, y, size float64) {
	return float64(w - trashSize - trashMargin), float64(h - trashSize - trashMargin), trashSize
}

// inTrash reports whether the screen position is over the drop area.
func inTrash(x, y float64) bool {
	tx, ty, size := trashRect()
	return x >= tx && x <= tx+size && y >= ty && y <= ty+size
}

// chartRect returns the top-right area occupied by the gain chart.
func chartRect() (x, y, size float64) {
	return float64(w - chartSize - chartMargin), chartMargin, chartSize
}

// snapToGrid rounds p to the nearest tenth of a wavelength.
func snapToGrid(p array.Point) array.Point {
	return array.Point{X: math.Round(p.X*10) / 10, Y: math.Round(p.Y*10) / 10}
}
