package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"PAS/internal/array"
)

var (
	chartGridColor    = color.RGBA{0, 0, 0, 50}
	chartPatternColor = color.RGBA{220, 20, 20, 220}
)

// chartRadius maps a normalized gain in dB onto [0, 1] of the chart radius,
// the floor at the centre and 0 dB on the rim.
func chartRadius(db float64) float64 {
	r := (db - array.GainFloorDB) / -array.GainFloorDB
	return math.Max(0, math.Min(1, r))
}

// chartPoint returns the chart position for bearing deg at fraction r of the
// radius: 0 degrees up, clockwise, matching the canvas.
func chartPoint(cx, cy, radius float64, deg, r float64) (float32, float32) {
	u := array.Bearing(deg)
	return float32(cx + u.X*radius*r), float32(cy - u.Y*radius*r)
}

// drawGainChart plots the gain pattern as a polar chart in the top-right
// corner.
func drawGainChart(screen *ebiten.Image, p array.GainPattern) {
	x, y, size := chartRect()
	cx, cy := x+size/2, y+size/2
	radius := size/2 - 14

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), panelColor, false)
	for i := 1; i <= 4; i++ {
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius*float64(i)/4), 1, chartGridColor, true)
	}
	for deg := 0.0; deg < 360; deg += 30 {
		ex, ey := chartPoint(cx, cy, radius, deg, 1)
		vector.StrokeLine(screen, float32(cx), float32(cy), ex, ey, 1, chartGridColor, true)
	}

	n := len(p.GainValues)
	for a := 0; a < n; a++ {
		b := (a + 1) % n
		x0, y0 := chartPoint(cx, cy, radius, float64(a)*360/float64(n), chartRadius(p.GainValues[a]))
		x1, y1 := chartPoint(cx, cy, radius, float64(b)*360/float64(n), chartRadius(p.GainValues[b]))
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, chartPatternColor, true)
	}

	vector.StrokeRect(screen, float32(x), float32(y), float32(size), float32(size), 1, panelEdgeColor, false)
	ebitenutil.DebugPrintAt(screen, "0°", int(cx)-6, int(y)+1)
	ebitenutil.DebugPrintAt(screen, "90°", int(x+size)-22, int(cy)-8)
	ebitenutil.DebugPrintAt(screen, "180°", int(cx)-12, int(y+size)-16)
	ebitenutil.DebugPrintAt(screen, "270°", int(x)+2, int(cy)-8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f dBd  peak %d°", p.ArrayGainDBd, p.Peak()), int(x)+4, int(y+size)+2)
}
