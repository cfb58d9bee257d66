package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PAS/internal/array"
	"PAS/internal/layout"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := newGame(gameOptions{speed: defaultSpeed, showWaves: true, sampler: newCPUFieldSampler(2)})
	t.Cleanup(g.Close)
	return g
}

func TestAddMoveRemoveElement(t *testing.T) {
	g := newTestGame(t)
	assert.True(t, g.showHelp)

	a := g.addElement(array.Point{X: -1})
	b := g.addElement(array.Point{X: 1})
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.False(t, g.showHelp)

	g.moveElement(b, array.Point{X: 2, Y: 3})
	assert.Equal(t, array.Element{X: 2, Y: 3}, g.elements[b])
	g.moveElement(7, array.Point{})

	g.removeElement(a)
	require.Len(t, g.elements, 1)
	assert.Equal(t, array.Element{X: 2, Y: 3}, g.elements[0])
	g.removeElement(-1)
	assert.Len(t, g.elements, 1)

	g.setTarget(array.Point{Y: 5})
	g.clearElements()
	assert.Empty(t, g.elements)
	assert.Nil(t, g.target)
	assert.True(t, g.showHelp)
}

func TestClearTargetKeepsSteeredPhases(t *testing.T) {
	g := newTestGame(t)
	g.addElement(array.Point{X: -1})
	g.addElement(array.Point{X: 1})
	target := array.Point{X: 1, Y: -2}
	g.setTarget(target)
	want := array.ComputePhases(g.elements, &target)

	g.clearTarget()
	assert.Nil(t, g.target)
	assert.Equal(t, want, g.elements)
	assert.InDelta(t, math.Mod(2/math.Sqrt(5), 1)*360, g.elements[1].Phase, 1e-9)

	// Clearing again is a no-op.
	g.clearTarget()
	assert.Equal(t, want, g.elements)
}

func TestSetTargetCopiesPoint(t *testing.T) {
	g := newTestGame(t)
	p := array.Point{X: 1, Y: 1}
	g.setTarget(p)
	p.X = 9
	assert.Equal(t, array.Point{X: 1, Y: 1}, *g.target)
}

func TestAdjustPhase(t *testing.T) {
	g := newTestGame(t)
	g.addElement(array.Point{})
	g.elements[0].Phase = 350

	require.True(t, g.adjustPhase(0, 15))
	assert.InDelta(t, 5, g.elements[0].Phase, 1e-9)
	require.True(t, g.adjustPhase(0, -15))
	assert.InDelta(t, 350, g.elements[0].Phase, 1e-9)
	assert.False(t, g.adjustPhase(3, 15))

	g.setTarget(array.Point{Y: 4})
	assert.False(t, g.adjustPhase(0, 15))
	assert.InDelta(t, 350, g.elements[0].Phase, 1e-9)
}

func TestClampSpeed(t *testing.T) {
	assert.InDelta(t, maxSpeed, clampSpeed(7), 1e-9)
	assert.InDelta(t, minSpeed, clampSpeed(0), 1e-9)
	assert.InDelta(t, minSpeed, clampSpeed(-3), 1e-9)
	assert.InDelta(t, 2.0, clampSpeed(2.04), 1e-9)
	assert.InDelta(t, 2.1, clampSpeed(2.06), 1e-9)
	assert.Equal(t, defaultSpeed, clampSpeed(math.NaN()))

	g := newTestGame(t)
	for i := 0; i < 100; i++ {
		g.adjustSpeed(speedStep)
	}
	assert.InDelta(t, maxSpeed, g.speed, 1e-9)
}

func TestStepReusesSteeringUntilLayoutChanges(t *testing.T) {
	g := newTestGame(t)
	g.addElement(array.Point{X: -1})
	g.addElement(array.Point{X: 1})

	g.step(1 / defaultTPS)
	g.step(1 / defaultTPS)
	assert.Equal(t, 1, g.memo.Recomputes())
	assert.InDelta(t, 2/defaultTPS, g.clock.Time, 1e-12)
	assert.Len(t, g.pattern.GainValues, array.PatternSamples)
	assert.InDelta(t, 10*math.Log10(2), g.pattern.ArrayGainDBd, 1e-9)

	g.setTarget(array.Point{X: 1, Y: -2})
	g.step(1 / defaultTPS)
	assert.Equal(t, 2, g.memo.Recomputes())
	assert.Equal(t, array.ComputePhases(g.elements, g.target), g.steered)
}

func TestSampleFieldFillsBuffer(t *testing.T) {
	g := newTestGame(t)
	g.step(0)
	require.NoError(t, g.sampleField())
	for _, v := range g.field.values {
		require.Zero(t, v)
	}

	g.addElement(array.Point{})
	g.step(0.3)
	require.NoError(t, g.sampleField())
	grid := g.field.grid()
	want := make([]float32, grid.Len())
	array.SampleGrid(g.steered, grid, 0, grid.Rows, g.clock.Time, g.speed, want)
	assert.Equal(t, want, g.field.values)
}

type failingSampler struct{ closed bool }

func (f *failingSampler) Sample([]array.Element, array.Grid, float64, float64, []float32) error {
	return errors.New("device lost")
}
func (f *failingSampler) Name() string { return "failing" }
func (f *failingSampler) Close()       { f.closed = true }

func TestSampleFieldFallsBackToCPU(t *testing.T) {
	bad := &failingSampler{}
	g := newGame(gameOptions{speed: defaultSpeed, sampler: bad})
	defer g.Close()
	g.addElement(array.Point{})
	g.step(0)

	require.NoError(t, g.sampleField())
	assert.True(t, bad.closed)
	assert.Equal(t, "cpu", g.sampler.Name())
	require.NoError(t, g.sampleField())
}

func TestSnapshotAndApplyConfiguration(t *testing.T) {
	g := newTestGame(t)
	g.addElement(array.Point{X: -1})
	g.addElement(array.Point{X: 1})
	g.setTarget(array.Point{X: 1, Y: -2})

	c := g.snapshot("pair")
	require.NoError(t, c.Validate())
	assert.Equal(t, array.ComputePhases(g.elements, g.target), c.Antennas)
	c.Target.X = 5
	assert.Equal(t, 1.0, g.target.X)

	other := newTestGame(t)
	require.NoError(t, other.applyConfiguration(c))
	assert.Equal(t, "pair", other.name)
	assert.Equal(t, c.Antennas, other.elements)
	assert.Equal(t, array.Point{X: 5, Y: -2}, *other.target)
	assert.False(t, other.showHelp)

	// An invalid configuration changes nothing.
	bad := layout.Configuration{Name: "bad", Antennas: []array.Element{{X: 0, Y: 0, Phase: 400}}}
	err := other.applyConfiguration(bad)
	assert.ErrorIs(t, err, layout.ErrInvalidConfiguration)
	assert.Equal(t, "pair", other.name)
	assert.Equal(t, c.Antennas, other.elements)
}

func TestApplyDialogResult(t *testing.T) {
	g := newTestGame(t)
	g.addElement(array.Point{X: 1})

	g.applyDialogResult(dialogResult{err: zenity.ErrCanceled})
	assert.Empty(t, g.status)

	g.applyDialogResult(dialogResult{err: errors.New("no display")})
	assert.Equal(t, "import/export failed", g.status)

	bad := layout.Configuration{Name: ""}
	g.applyDialogResult(dialogResult{imported: &bad})
	assert.Equal(t, "import rejected", g.status)
	assert.Len(t, g.elements, 1)

	good := layout.Configuration{Name: "imported", Antennas: []array.Element{{X: 0, Y: 2}, {X: 0, Y: -2}}}
	g.applyDialogResult(dialogResult{imported: &good})
	assert.Equal(t, "imported", g.name)
	assert.Equal(t, good.Antennas, g.elements)

	g.applyDialogResult(dialogResult{exported: "/tmp/x.yaml", size: 120})
	assert.Contains(t, g.status, "/tmp/x.yaml")
}

func TestDrainDialogs(t *testing.T) {
	g := newTestGame(t)
	g.dialogOpen = true
	cfg := layout.Configuration{Name: "queued"}
	g.dialogs <- dialogResult{imported: &cfg}

	g.drainDialogs()
	assert.False(t, g.dialogOpen)
	assert.Equal(t, "queued", g.name)
	g.drainDialogs()
}

func TestYAMLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.yaml")
	target := array.Point{X: 1, Y: -2}
	cfg := layout.Configuration{
		Name:     "pair",
		Antennas: []array.Element{{X: -1, Y: 0, Phase: 0}, {X: 1, Y: 0, Phase: 32.5}},
		Target:   &target,
	}
	n, err := writeYAMLFile(path, cfg)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	got, err := readYAMLFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = readYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPressDragReleaseIntoTrash(t *testing.T) {
	g := newTestGame(t)
	x, y := worldToScreen(array.Point{X: 1.23, Y: 0.51})
	g.pressEdit(x, y)
	require.Len(t, g.elements, 1)
	assert.InDelta(t, 1.2, g.elements[0].X, 1e-9)
	assert.InDelta(t, 0.5, g.elements[0].Y, 1e-9)
	assert.True(t, g.drag.active)

	tx, ty, size := trashRect()
	g.dragTo(tx+size/2, ty+size/2)
	g.releaseEdit(tx+size/2, ty+size/2)
	assert.Empty(t, g.elements)
	assert.False(t, g.drag.active)
	assert.True(t, g.showHelp)
}
