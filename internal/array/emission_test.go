package array

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spacingTolerance = 1e-9

func TestBaseRadius(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		time  float64
		speed float64
		want  float64
	}{
		{"origin", 0, 0, 1, 0},
		{"phase only", 90, 0, 2, 0.25},
		{"time only", 0, 0.3, 2, 0.6},
		{"wraps", 270, 0.5, 1, 0.25},
		{"whole periods", 180, 7, 3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseRadius(Element{Phase: tt.phase}, tt.time, tt.speed)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 1.0)
		})
	}
}

func TestCrestRadiiSpacing(t *testing.T) {
	e := Element{X: 1, Y: 2, Phase: 45}
	radii := slices.Collect(CrestRadii(e, 0.37, 2, 6))
	require.NotEmpty(t, radii)
	assert.InDelta(t, BaseRadius(e, 0.37, 2), radii[0], 1e-12)
	for i := 1; i < len(radii); i++ {
		assert.InDelta(t, 1, radii[i]-radii[i-1], spacingTolerance)
	}
	assert.LessOrEqual(t, radii[len(radii)-1], 6.0)
	assert.Greater(t, radii[len(radii)-1]+1, 6.0)
}

func TestCrestRadiiRestartable(t *testing.T) {
	seq := CrestRadii(Element{Phase: 10}, 1.2, 0.7, 4.5)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestCrestRadiiIncludesMaxRadius(t *testing.T) {
	radii := slices.Collect(CrestRadii(Element{}, 0, 1, 3))
	assert.Equal(t, []float64{0, 1, 2, 3}, radii)
}

func TestCrestRadiiDegenerateBounds(t *testing.T) {
	assert.Empty(t, slices.Collect(CrestRadii(Element{Phase: 90}, 0, 1, 0.1)))
	assert.Empty(t, slices.Collect(CrestRadii(Element{}, 0, 1, -1)))
	assert.Empty(t, slices.Collect(CrestRadii(Element{}, 0, 1, math.Inf(1))))
	assert.Empty(t, slices.Collect(CrestRadii(Element{}, 0, 1, math.NaN())))
}

func TestTroughRadii(t *testing.T) {
	e := Element{Phase: 72}
	crests := slices.Collect(CrestRadii(e, 0, 1, 3))
	troughs := slices.Collect(TroughRadii(e, 0, 1, 3))
	// base 0.2: the first crest has no positive trough inside it.
	require.Len(t, crests, 3)
	require.Len(t, troughs, 2)
	for i, tr := range troughs {
		assert.Greater(t, tr, 0.0)
		assert.InDelta(t, crests[i+1]-0.5, tr, 1e-12)
	}
}

func TestRingsInterleaves(t *testing.T) {
	rings := slices.Collect(Rings(Element{Phase: 270}, 0, 1, 2))
	// base 0.75 -> crest 0.75, trough 0.25, crest 1.75, trough 1.25
	require.Len(t, rings, 4)
	assert.Equal(t, Crest, rings[0].Kind)
	assert.Equal(t, Trough, rings[1].Kind)
	assert.InDelta(t, 0.25, rings[1].Radius, 1e-12)
	assert.InDelta(t, 1.75, rings[2].Radius, 1e-12)
	assert.Equal(t, "trough", rings[3].Kind.String())
}

func TestRingsStopEarly(t *testing.T) {
	n := 0
	for range Rings(Element{}, 0.5, 1, 100) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCrestRadiiWrapAcrossPeriod(t *testing.T) {
	e := Element{Phase: 0}
	const speed = 2.0
	period := 1 / speed
	prev := BaseRadius(e, 0, speed)
	wrapped := 0
	for step := 1; step <= 40; step++ {
		tm := float64(step) * period / 20
		r := BaseRadius(e, tm, speed)
		if r < prev {
			wrapped++
		}
		prev = r
	}
	// Two full periods wrap twice.
	assert.Equal(t, 2, wrapped)
	assert.InDelta(t,
		BaseRadius(e, 0.1, speed),
		BaseRadius(e, 0.1+period, speed), 1e-9)
}
