package array

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

const (
	// PatternSamples is the number of 1 degree steps in a gain pattern.
	PatternSamples = 360
	// GainFloorDB clamps the tail of a normalized pattern.
	GainFloorDB = -40.0
)

// GainPattern is the normalized far-field pattern of an array. GainValues[a]
// is the gain toward compass bearing a degrees, peak at 0 dB and floored at
// GainFloorDB. ArrayGainDBd is the theoretical 10*log10(n) directivity label.
type GainPattern struct {
	GainValues   []float64 `json:"gainValues"`
	ArrayGainDBd float64   `json:"arrayGainDBd"`
}

// Empty reports whether the pattern was computed from no elements.
func (p GainPattern) Empty() bool { return len(p.GainValues) == 0 }

// Peak returns the bearing in degrees of the first maximum of the pattern.
func (p GainPattern) Peak() int {
	if p.Empty() {
		return 0
	}
	return floats.MaxIdx(p.GainValues)
}

var patternBearings = precomputeBearings(PatternSamples)

func precomputeBearings(n int) []Point {
	dirs := make([]Point, n)
	for a := range dirs {
		dirs[a] = Bearing(float64(a) * 360 / float64(n))
	}
	return dirs
}

// ComputeGainPattern sweeps the array factor of elements over every whole
// degree. An empty array yields an empty pattern.
func ComputeGainPattern(elements []Element) GainPattern {
	if len(elements) == 0 {
		return GainPattern{}
	}
	raw := make([]float64, PatternSamples)
	sweepGain(elements, Centroid(elements), raw, 0, PatternSamples)
	return normalizePattern(raw, len(elements))
}

// ComputeGainPatternParallel is ComputeGainPattern with the angle sweep split
// into contiguous shards evaluated on up to workers goroutines.
func ComputeGainPatternParallel(ctx context.Context, elements []Element, workers int) (GainPattern, error) {
	if len(elements) == 0 {
		return GainPattern{}, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > PatternSamples {
		workers = PatternSamples
	}
	c := Centroid(elements)
	raw := make([]float64, PatternSamples)
	per := (PatternSamples + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < PatternSamples; start += per {
		end := min(start+per, PatternSamples)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sweepGain(elements, c, raw, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GainPattern{}, err
	}
	return normalizePattern(raw, len(elements)), nil
}

// sweepGain writes the unnormalized gain in dB for bearings [start, end).
// Each shard owns its range of dst.
func sweepGain(elements []Element, c Point, dst []float64, start, end int) {
	n := float64(len(elements))
	for a := start; a < end; a++ {
		u := patternBearings[a]
		var re, im float64
		for _, e := range elements {
			total := 2*math.Pi*e.Pos().Sub(c).Dot(u) + e.Phase*math.Pi/180
			s, co := math.Sincos(total)
			re += co
			im += s
		}
		power := (re*re + im*im) / (n * n)
		dst[a] = 10 * math.Log10(power)
	}
}

// normalizePattern shifts raw so its peak sits at 0 dB and floors the tail.
// A pattern with no power anywhere is reported flat.
func normalizePattern(raw []float64, n int) GainPattern {
	values := make([]float64, len(raw))
	maxGain := floats.Max(raw)
	if !math.IsInf(maxGain, -1) {
		copy(values, raw)
		floats.AddConst(-maxGain, values)
		for a, v := range values {
			values[a] = math.Max(v, GainFloorDB)
		}
	}
	return GainPattern{
		GainValues:   values,
		ArrayGainDBd: 10 * math.Log10(float64(n)),
	}
}
