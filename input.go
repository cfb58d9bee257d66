package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput applies keyboard and pointer input to the layout.
func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	g.cursor = screenToWorld(x, y)

	g.handleKeys()
	switch g.mode {
	case modeEdit:
		g.handleEditPointer(x, y)
	case modeTarget:
		g.handleTargetPointer()
	}
	g.handleWheel(x, y)
}

// handleKeys processes toggles, speed, and configuration hotkeys.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.mode == modeEdit {
			g.mode = modeTarget
		} else {
			g.mode = modeEdit
		}
		g.drag = dragState{index: -1}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.showWaves = !g.showWaves
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.showCircles = !g.showCircles
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.adjustSpeed(-speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.adjustSpeed(speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.clearTarget()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.clearElements()
		g.name = "untitled"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveCurrent(fmt.Sprintf("array-%s", time.Now().Format("20060102-150405")))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.loadNextSaved()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.startExport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.startImport()
	}
}

// handleEditPointer places, drags, and deletes elements.
func (g *Game) handleEditPointer(x, y float64) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressEdit(x, y)
	}
	if g.drag.active && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragTo(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.releaseEdit(x, y)
	}
}

// pressEdit grabs the element under the pointer or places a new one.
func (g *Game) pressEdit(x, y float64) {
	if inTrash(x, y) {
		return
	}
	idx := g.elementAt(x, y)
	p := screenToWorld(x, y)
	if idx < 0 {
		idx = g.addElement(snapToGrid(p))
	}
	g.drag = dragState{
		active: true,
		index:  idx,
		offset: p.Sub(g.elements[idx].Pos()),
	}
}

// dragTo moves the grabbed element with the pointer.
func (g *Game) dragTo(x, y float64) {
	g.moveElement(g.drag.index, screenToWorld(x, y).Sub(g.drag.offset))
}

// releaseEdit drops the grabbed element, deleting it over the trash area.
func (g *Game) releaseEdit(x, y float64) {
	if g.drag.active && inTrash(x, y) {
		g.removeElement(g.drag.index)
		if len(g.elements) == 0 {
			g.showHelp = true
		}
	}
	g.drag = dragState{index: -1}
}

// handleTargetPointer sets the target on left click and clears it on right.
func (g *Game) handleTargetPointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.setTarget(g.cursor)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.clearTarget()
	}
}

// handleWheel adjusts the phase of the hovered element while untargeted.
func (g *Game) handleWheel(x, y float64) {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	idx := g.elementAt(x, y)
	if idx < 0 {
		return
	}
	delta := phaseStepDegrees
	if dy < 0 {
		delta = -delta
	}
	if !g.adjustPhase(idx, delta) {
		g.status = "phases follow the target; clear it to edit them"
		return
	}
	if *debugFlag {
		log.Printf("Element %d phase %.1f°", idx, g.elements[idx].Phase)
	}
}
