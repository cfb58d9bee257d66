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
	backgroundColor = color.RGBA{12, 14, 20, 255}
	gridLineColor   = color.RGBA{45, 50, 60, 255}
	gridAxisColor   = color.RGBA{80, 88, 100, 255}
	crestColor      = color.RGBA{230, 60, 60, 200}
	troughColor     = color.RGBA{70, 110, 240, 200}
	elementColor    = color.RGBA{40, 90, 255, 255}
	elementHalo     = color.RGBA{90, 130, 255, 255}
	dragColor       = color.RGBA{120, 160, 255, 255}
	targetColor     = color.RGBA{255, 70, 70, 255}
	panelColor      = color.RGBA{255, 255, 255, 210}
	panelEdgeColor  = color.RGBA{0, 0, 0, 130}
	trashColor      = color.RGBA{200, 40, 40, 160}
)

// Draw renders the field, emission circles, elements, target, and overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.showWaves {
		g.field.clear()
	}
	g.field.paint(backgroundColor)
	drawGridLines(g.field, gridLineColor, gridAxisColor)
	for i, e := range g.steered {
		if g.drag.active && g.drag.index == i {
			continue
		}
		x, y := worldToScreen(e.Pos())
		cx, cy := int(math.Round(x)), int(math.Round(y))
		stampFootprint(g.field, elementFootprint, cx, cy, elementColor)
		stampFootprint(g.field, haloFootprint, cx, cy, elementHalo)
	}
	screen.WritePixels(g.field.pixels)

	if g.showCircles {
		g.drawEmissionCircles(screen)
	}
	g.drawElements(screen)
	g.drawTarget(screen)
	if !g.pattern.Empty() {
		drawGainChart(screen, g.pattern)
	}
	if g.drag.active {
		drawTrash(screen)
	}
	if g.showHelp && len(g.elements) == 0 {
		drawHelp(screen)
	}
	g.drawStatus(screen)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return w, h }

// drawEmissionCircles strokes the crest and trough rings of every element.
func (g *Game) drawEmissionCircles(screen *ebiten.Image) {
	maxRadius := math.Hypot(w, h) / cellPixels
	for _, e := range g.steered {
		cx, cy := worldToScreen(e.Pos())
		for ring := range array.Rings(e, g.clock.Time, g.speed, maxRadius) {
			clr := crestColor
			if ring.Kind == array.Trough {
				clr = troughColor
			}
			vector.StrokeCircle(screen, float32(cx), float32(cy), float32(ring.Radius*cellPixels), 1, clr, true)
		}
	}
}

// drawElements highlights the dragged element and labels every element with
// its phase.
func (g *Game) drawElements(screen *ebiten.Image) {
	ref, steering := array.ReferenceIndex(g.steered, g.target)
	for i, e := range g.steered {
		x, y := worldToScreen(e.Pos())
		if g.drag.active && g.drag.index == i {
			vector.DrawFilledCircle(screen, float32(x), float32(y), elementRadius/2, elementColor, true)
			vector.StrokeCircle(screen, float32(x), float32(y), elementRadius, 2, dragColor, true)
		}
		label := fmt.Sprintf("%.1f°", e.Phase)
		if steering && i == ref {
			label += " ref"
		}
		ebitenutil.DebugPrintAt(screen, label, int(x)-len(label)*3, int(y)-8)
	}
}

// drawTarget marks the target with a crosshair and a line from the array
// centroid.
func (g *Game) drawTarget(screen *ebiten.Image) {
	if g.target == nil {
		return
	}
	x, y := worldToScreen(*g.target)
	fx, fy := float32(x), float32(y)
	const arm = 10
	vector.StrokeCircle(screen, fx, fy, arm, 2, targetColor, true)
	vector.StrokeLine(screen, fx-arm-4, fy, fx+arm+4, fy, 1, targetColor, true)
	vector.StrokeLine(screen, fx, fy-arm-4, fx, fy+arm+4, 1, targetColor, true)
	if len(g.steered) > 0 {
		cx, cy := worldToScreen(array.Centroid(g.steered))
		vector.StrokeLine(screen, float32(cx), float32(cy), fx, fy, 1, color.RGBA{255, 70, 70, 90}, true)
	}
}

// drawTrash shows the drop area that deletes the dragged element.
func drawTrash(screen *ebiten.Image) {
	x, y, size := trashRect()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), trashColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(size), float32(size), 2, panelEdgeColor, false)
	ebitenutil.DebugPrintAt(screen, "drop to delete", int(x)+6, int(y+size/2)-8)
}

var helpLines = []string{
	"Click the canvas to place an element, drag it to move.",
	"Drag an element onto the red box to delete it.",
	"Tab switches to target mode: click to steer, right click clears.",
	"W waves  C circles  [ ] speed  S save  L load  E export  I import",
}

// drawHelp renders the instructions box shown while the canvas is empty.
func drawHelp(screen *ebiten.Image) {
	const lineHeight = 18
	width := 0
	for _, l := range helpLines {
		width = max(width, len(l)*6)
	}
	boxW := float32(width + 32)
	boxH := float32(len(helpLines)*lineHeight + 24)
	boxX := (float32(w) - boxW) / 2
	boxY := (float32(h) - boxH) / 2
	vector.DrawFilledRect(screen, boxX, boxY, boxW, boxH, panelColor, false)
	vector.StrokeRect(screen, boxX, boxY, boxW, boxH, 2, panelEdgeColor, false)
	for i, l := range helpLines {
		ebitenutil.DebugPrintAt(screen, l, int(boxX)+16, int(boxY)+12+i*lineHeight)
	}
}

// drawStatus prints the mode line and, when enabled, the debug overlay.
func (g *Game) drawStatus(screen *ebiten.Image) {
	msg := fmt.Sprintf("%s  mode: %s  speed: %.1f λ/s  elements: %d",
		g.name, g.mode, g.speed, len(g.elements))
	if g.status != "" {
		msg += "\n" + g.status
	}
	if g.showDebug {
		msg += fmt.Sprintf("\nFPS: %.1f  TPS: %.1f\nField: %d samples on %s in %.2f ms\nLayout recomputes: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.field.grid().Len(), g.sampler.Name(),
			g.lastSampleDuration.Seconds()*1000, g.memo.Recomputes())
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
