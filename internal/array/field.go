package array

import "math"

// SampleField returns the instantaneous interference intensity in [0, 1] at
// point for an array radiating at speed wavelengths per time unit. An empty
// array has no field.
func SampleField(elements []Element, point Point, time, speed float64) float64 {
	if len(elements) == 0 {
		return 0
	}
	// Reduce the temporal term to one period so large clock values keep
	// their precision.
	drift := 2 * math.Pi * wrapUnit(speed*time)
	var sum float64
	for _, e := range elements {
		d := math.Hypot(point.X-e.X, point.Y-e.Y)
		sum += math.Sin(2*math.Pi*d - drift + e.Phase*math.Pi/180)
	}
	v := math.Abs(sum) / float64(len(elements))
	if v > 1 {
		v = 1
	}
	return v
}

// Grid describes a row-major lattice of sample points in wavelengths. Cell
// (col, row) sits at Origin + (col*Step, -row*Step), rows running downward
// the way screens do.
type Grid struct {
	Origin     Point
	Step       float64
	Cols, Rows int
}

// At returns the sample point of cell (col, row).
func (g Grid) At(col, row int) Point {
	return Point{
		X: g.Origin.X + float64(col)*g.Step,
		Y: g.Origin.Y - float64(row)*g.Step,
	}
}

// Len returns the number of cells in g.
func (g Grid) Len() int { return g.Cols * g.Rows }

// SampleGrid evaluates SampleField over rows [rowStart, rowEnd) of grid and
// writes the intensities into dst, which must hold grid.Len() values.
func SampleGrid(elements []Element, grid Grid, rowStart, rowEnd int, time, speed float64, dst []float32) {
	rowStart = max(rowStart, 0)
	rowEnd = min(rowEnd, grid.Rows)
	for row := rowStart; row < rowEnd; row++ {
		base := row * grid.Cols
		for col := 0; col < grid.Cols; col++ {
			dst[base+col] = float32(SampleField(elements, grid.At(col, row), time, speed))
		}
	}
}

// Clock is the simulation time threaded through animation ticks.
type Clock struct {
	Time float64
}

// Advance returns the clock moved forward by dt. Negative steps are ignored
// so time stays monotonic.
func (c Clock) Advance(dt float64) Clock {
	if dt > 0 && !math.IsInf(dt, 0) {
		c.Time += dt
	}
	return c
}
