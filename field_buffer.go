package main

import (
	"image/color"
	"math"

	"PAS/internal/array"
)

// fieldBuffer stores the decimated intensity samples and the RGBA pixels
// blitted to the screen every frame.
type fieldBuffer struct {
	cols, rows int
	res        int
	values     []float32
	pixels     []byte
}

// newFieldBuffer allocates a fieldBuffer sampling every res screen pixels.
func newFieldBuffer(width, height, res int) *fieldBuffer {
	cols, rows := width/res, height/res
	return &fieldBuffer{
		cols: cols, rows: rows, res: res,
		values: make([]float32, cols*rows),
		pixels: make([]byte, width*height*4),
	}
}

// grid returns the world positions of the samples: one per res x res block,
// taken at the block centre.
func (f *fieldBuffer) grid() array.Grid {
	half := float64(f.res) / 2
	return array.Grid{
		Origin: screenToWorld(half, half),
		Step:   float64(f.res) / cellPixels,
		Cols:   f.cols,
		Rows:   f.rows,
	}
}

// clear zeroes every sample.
func (f *fieldBuffer) clear() {
	for i := range f.values {
		f.values[i] = 0
	}
}

// paint expands the samples into pixels, green scaled by intensity on the
// background colour.
func (f *fieldBuffer) paint(bg color.RGBA) {
	width := f.cols * f.res
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			v := float64(f.values[row*f.cols+col])
			v = math.Max(0, math.Min(1, v))
			r := byte(float64(bg.R) * (1 - v))
			g := byte(float64(bg.G)*(1-v) + 255*v)
			b := byte(float64(bg.B) * (1 - v))
			y0 := row * f.res
			x0 := col * f.res
			for y := y0; y < y0+f.res; y++ {
				base := (y*width + x0) * 4
				for x := 0; x < f.res; x++ {
					p := base + x*4
					f.pixels[p] = r
					f.pixels[p+1] = g
					f.pixels[p+2] = b
					f.pixels[p+3] = 255
				}
			}
		}
	}
}

// setPixel writes one opaque pixel, ignoring coordinates off the buffer.
func (f *fieldBuffer) setPixel(x, y int, clr color.RGBA) {
	width := f.cols * f.res
	height := f.rows * f.res
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	p := (y*width + x) * 4
	f.pixels[p] = clr.R
	f.pixels[p+1] = clr.G
	f.pixels[p+2] = clr.B
	f.pixels[p+3] = 255
}
