package main

import (
	"image/color"

	"PAS/internal/array"
)

// worldToScreen maps a position in wavelengths to window pixels.
func worldToScreen(p array.Point) (float64, float64) {
	return float64(w)/2 + p.X*cellPixels, float64(h)/2 - p.Y*cellPixels
}

// screenToWorld maps window pixels to a position in wavelengths.
func screenToWorld(x, y float64) array.Point {
	return array.Point{
		X: (x - float64(w)/2) / cellPixels,
		Y: (float64(h)/2 - y) / cellPixels,
	}
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// drawGridLines stamps one line per wavelength into the field pixels, with
// the axes through the origin drawn brighter.
func drawGridLines(f *fieldBuffer, line, axis color.RGBA) {
	width, height := f.cols*f.res, f.rows*f.res
	for i := 0; i <= gridCells; i++ {
		x := clampCoord(i*cellPixels, 0, width-1)
		y := clampCoord(i*cellPixels, 0, height-1)
		clr := line
		if i == gridCells/2 {
			clr = axis
		}
		drawLine(f, x, 0, x, height-1, clr)
		drawLine(f, 0, y, width-1, y, clr)
	}
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(f *fieldBuffer, x0, y0, x1, y1 int, clr color.RGBA) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		f.setPixel(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
