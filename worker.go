package main

import (
	"errors"
	"runtime"
	"sync"

	"PAS/internal/array"
)

// fieldSampler evaluates the interference intensity over a sample grid.
type fieldSampler interface {
	Sample(elements []array.Element, grid array.Grid, time, speed float64, dst []float32) error
	Name() string
	Close()
}

// rowBand is a half-open range of grid rows.
type rowBand struct{ start, end int }

// workerMask collects the row bands assigned to a worker goroutine.
type workerMask struct {
	bands []rowBand
}

// bandRows is the height of the row bands handed out to workers.
const bandRows = 4

// fieldJob is the frame every worker samples its bands of.
type fieldJob struct {
	elements []array.Element
	grid     array.Grid
	time     float64
	speed    float64
	dst      []float32
}

var errSamplerClosed = errors.New("field sampler closed")

// cpuFieldSampler shares each frame across long-lived worker goroutines
// woken through a condition variable.
type cpuFieldSampler struct {
	mu          sync.Mutex
	cond        *sync.Cond
	step        int
	pending     int
	closed      bool
	workerCount int
	masks       []workerMask
	maskRows    int
	job         fieldJob
}

// newCPUFieldSampler starts workers goroutines; zero means one per CPU.
func newCPUFieldSampler(workers int) *cpuFieldSampler {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	s := &cpuFieldSampler{workerCount: workers, maskRows: -1}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < workers; i++ {
		go s.workerLoop(i)
	}
	return s
}

// Name identifies the sampler in logs and the debug overlay.
func (s *cpuFieldSampler) Name() string { return "cpu" }

// Sample blocks until every worker has filled its bands of dst.
func (s *cpuFieldSampler) Sample(elements []array.Element, grid array.Grid, time, speed float64, dst []float32) error {
	if len(dst) < grid.Len() {
		return errors.New("field buffer smaller than sample grid")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSamplerClosed
	}
	if s.maskRows != grid.Rows {
		s.masks = assignRowBands(s.workerCount, grid.Rows)
		s.maskRows = grid.Rows
	}
	s.job = fieldJob{elements: elements, grid: grid, time: time, speed: speed, dst: dst}
	s.pending = s.workerCount
	s.step++
	s.cond.Broadcast()
	for s.pending > 0 {
		s.cond.Wait()
	}
	s.job = fieldJob{}
	return nil
}

// Close stops the worker goroutines.
func (s *cpuFieldSampler) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// workerLoop samples the bands assigned to worker index for every frame.
func (s *cpuFieldSampler) workerLoop(index int) {
	lastStep := 0
	s.mu.Lock()
	for {
		for s.step == lastStep && !s.closed {
			s.cond.Wait()
		}
		if s.step == lastStep {
			s.mu.Unlock()
			return
		}
		lastStep = s.step
		job := s.job
		var mask workerMask
		if index < len(s.masks) {
			mask = s.masks[index]
		}
		s.mu.Unlock()

		for _, b := range mask.bands {
			array.SampleGrid(job.elements, job.grid, b.start, b.end, job.time, job.speed, job.dst)
		}

		s.mu.Lock()
		s.pending--
		if s.pending == 0 {
			s.cond.Broadcast()
		}
	}
}

// assignRowBands cuts rows into bands and distributes them across workers in
// round robin fashion.
func assignRowBands(workerCount, rows int) []workerMask {
	if workerCount < 1 {
		workerCount = 1
	}
	masks := make([]workerMask, workerCount)
	idx := 0
	for start := 0; start < rows; start += bandRows {
		end := min(start+bandRows, rows)
		masks[idx%workerCount].bands = append(masks[idx%workerCount].bands, rowBand{start: start, end: end})
		idx++
	}
	return masks
}
