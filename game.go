package main

import (
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"PAS/internal/array"
	"PAS/internal/layout"
	"PAS/internal/store"
)

// editMode selects what a left click on the canvas does.
type editMode int

const (
	modeEdit editMode = iota
	modeTarget
)

func (m editMode) String() string {
	if m == modeTarget {
		return "target"
	}
	return "edit"
}

// dragState tracks the element under the pointer while the button is held.
type dragState struct {
	active bool
	index  int
	offset array.Point
}

// Game owns the element layout and target, and drives the array core once per
// tick. Input handling is the only writer of elements and target; the core is
// called with read-only values.
type Game struct {
	elements []array.Element
	target   *array.Point
	name     string

	memo    array.Memo
	steered []array.Element
	pattern array.GainPattern

	clock       array.Clock
	speed       float64
	mode        editMode
	showWaves   bool
	showCircles bool
	showHelp    bool
	showDebug   bool

	drag   dragState
	cursor array.Point

	field              *fieldBuffer
	sampler            fieldSampler
	lastSampleDuration time.Duration
	lastSampleLog      time.Time

	store      *store.DB
	savedIndex int

	dialogs    chan dialogResult
	dialogOpen bool
	status     string

	audioCtx    *audio.Context
	audioStream *probeAudioStream
	audioPlayer *audio.Player
}

// gameOptions carries the startup configuration resolved from flags and
// settings.
type gameOptions struct {
	speed       float64
	showWaves   bool
	showCircles bool
	showDebug   bool
	enableAudio bool
	sampler     fieldSampler
	store       *store.DB
}

// newGame constructs a fully initialized Game instance.
func newGame(opts gameOptions) *Game {
	g := &Game{
		name:        "untitled",
		speed:       clampSpeed(opts.speed),
		showWaves:   opts.showWaves,
		showCircles: opts.showCircles,
		showHelp:    true,
		showDebug:   opts.showDebug,
		field:       newFieldBuffer(w, h, fieldResolution),
		sampler:     opts.sampler,
		store:       opts.store,
		dialogs:     make(chan dialogResult, 1),
		drag:        dragState{index: -1},
	}
	if g.sampler == nil {
		g.sampler = newCPUFieldSampler(0)
	}
	if opts.enableAudio {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		stream := newProbeAudioStream()
		g.audioStream = stream
		if player, err := ctx.NewPlayer(stream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferLatency)
			g.audioPlayer.Play()
		}
	}
	return g
}

// Update handles input, refreshes the steering solution when the layout
// changed, advances the clock and samples the field for the next frame.
func (g *Game) Update() error {
	g.drainDialogs()
	g.handleInput()
	g.step(1 / defaultTPS)
	if g.showWaves {
		if err := g.sampleField(); err != nil {
			return err
		}
	}
	if g.audioStream != nil {
		g.audioStream.SetLevel(array.SampleField(g.steered, g.cursor, g.clock.Time, g.speed))
	}
	return nil
}

// step resolves the steered layout and moves the clock forward by dt.
func (g *Game) step(dt float64) {
	g.steered, g.pattern = g.memo.Resolve(g.elements, g.target)
	g.clock = g.clock.Advance(dt)
}

// sampleField fills the field buffer, dropping back to the CPU sampler if an
// accelerated one fails.
func (g *Game) sampleField() error {
	if len(g.steered) == 0 {
		g.field.clear()
		return nil
	}
	start := time.Now()
	err := g.sampler.Sample(g.steered, g.field.grid(), g.clock.Time, g.speed, g.field.values)
	if err != nil {
		if _, isCPU := g.sampler.(*cpuFieldSampler); isCPU {
			return fmt.Errorf("sampling field: %w", err)
		}
		log.Printf("%s field sampling failed, falling back to CPU: %v", g.sampler.Name(), err)
		g.sampler.Close()
		g.sampler = newCPUFieldSampler(*workersFlag)
		return nil
	}
	g.lastSampleDuration = time.Since(start)
	if g.showDebug && time.Since(g.lastSampleLog) >= sampleLogInterval {
		log.Printf("Sampled %d points for %d elements on %s in %s",
			g.field.grid().Len(), len(g.steered), g.sampler.Name(), g.lastSampleDuration)
		g.lastSampleLog = time.Now()
	}
	return nil
}

// Close releases the sampler and audio player.
func (g *Game) Close() {
	if g.sampler != nil {
		g.sampler.Close()
	}
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
}

// addElement places a new element and returns its index.
func (g *Game) addElement(p array.Point) int {
	g.elements = append(g.elements, array.Element{X: p.X, Y: p.Y})
	g.showHelp = false
	return len(g.elements) - 1
}

// moveElement repositions element i.
func (g *Game) moveElement(i int, p array.Point) {
	if i < 0 || i >= len(g.elements) {
		return
	}
	g.elements[i].X = p.X
	g.elements[i].Y = p.Y
}

// removeElement deletes element i.
func (g *Game) removeElement(i int) {
	if i < 0 || i >= len(g.elements) {
		return
	}
	g.elements = slices.Delete(g.elements, i, i+1)
}

// clearElements removes every element and the target.
func (g *Game) clearElements() {
	g.elements = nil
	g.target = nil
	g.showHelp = true
}

// setTarget points the array at p.
func (g *Game) setTarget(p array.Point) {
	t := p
	g.target = &t
}

// clearTarget drops the target, keeping the last steered phases so the
// pattern does not jump.
func (g *Game) clearTarget() {
	if g.target == nil {
		return
	}
	g.elements = array.ComputePhases(g.elements, g.target)
	g.target = nil
}

// adjustPhase shifts the phase of element i by delta degrees. Phases are
// owned by the steering solution while a target is set.
func (g *Game) adjustPhase(i int, delta float64) bool {
	if g.target != nil || i < 0 || i >= len(g.elements) {
		return false
	}
	p := math.Mod(g.elements[i].Phase+delta, 360)
	if p < 0 {
		p += 360
	}
	g.elements[i].Phase = p
	return true
}

// adjustSpeed changes the wave speed by delta, clamped and rounded to the
// speed step.
func (g *Game) adjustSpeed(delta float64) {
	g.speed = clampSpeed(g.speed + delta)
}

func clampSpeed(v float64) float64 {
	if math.IsNaN(v) {
		return defaultSpeed
	}
	v = math.Round(v/speedStep) * speedStep
	return math.Max(minSpeed, math.Min(maxSpeed, v))
}

// snapshot returns the current layout as a configuration named name.
func (g *Game) snapshot(name string) layout.Configuration {
	c := layout.Configuration{
		Name:     name,
		Antennas: array.ComputePhases(g.elements, g.target),
	}
	if g.target != nil {
		t := *g.target
		c.Target = &t
	}
	return c
}

// applyConfiguration replaces the layout with c. Nothing changes unless c
// validates.
func (g *Game) applyConfiguration(c layout.Configuration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c = c.Clone()
	g.elements = c.Antennas
	g.target = c.Target
	g.name = c.Name
	g.showHelp = len(g.elements) == 0
	g.drag = dragState{index: -1}
	return nil
}
