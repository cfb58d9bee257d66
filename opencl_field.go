//go:build opencl

package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"PAS/internal/array"
)

type openCLFieldSampler struct {
	context     *cl.Context
	queue       *cl.CommandQueue
	program     *cl.Program
	kernel      *cl.Kernel
	elementBuf  *cl.MemObject
	outBuf      *cl.MemObject
	cols        int
	rows        int
	elementCap  int
	elementData []float32
	deviceName  string
}

const fieldKernelSource = `__kernel void sample_field(
    const int cols,
    const int rows,
    const float origin_x,
    const float origin_y,
    const float step,
    const int count,
    const float drift,
    __global const float* elements,
    __global float* out)
{
    int idx = get_global_id(0);
    if (idx >= cols * rows) {
        return;
    }
    int col = idx % cols;
    int row = idx / cols;
    float px = origin_x + (float)col * step;
    float py = origin_y - (float)row * step;
    float sum = 0.0f;
    for (int i = 0; i < count; i++) {
        float dx = px - elements[3 * i];
        float dy = py - elements[3 * i + 1];
        float d = sqrt(dx * dx + dy * dy);
        sum += sin(6.283185307f * d - drift + elements[3 * i + 2]);
    }
    out[idx] = fmin(fabs(sum) / (float)count, 1.0f);
}`

func newOpenCLFieldSampler(cols, rows int) (*openCLFieldSampler, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &openCLFieldSampler{cols: cols, rows: rows, deviceName: device.Name()}
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{fieldKernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("sample_field"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	byteSize := cols * rows * int(unsafe.Sizeof(float32(0)))
	if s.outBuf, err = s.context.CreateEmptyBuffer(cl.MemWriteOnly, byteSize); err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating output buffer: %w", err)
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureElementBuffer grows the device element buffer to hold n elements.
func (s *openCLFieldSampler) ensureElementBuffer(n int) error {
	if n <= s.elementCap && s.elementBuf != nil {
		return nil
	}
	capacity := max(n, 2*s.elementCap, 16)
	buf, err := s.context.CreateEmptyBuffer(cl.MemReadOnly, 3*capacity*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		return fmt.Errorf("allocating element buffer: %w", err)
	}
	if s.elementBuf != nil {
		s.elementBuf.Release()
	}
	s.elementBuf = buf
	s.elementCap = capacity
	return nil
}

// Name identifies the sampler in logs and the debug overlay.
func (s *openCLFieldSampler) Name() string { return "opencl" }

// Sample evaluates the field on the device and reads the result into dst.
func (s *openCLFieldSampler) Sample(elements []array.Element, grid array.Grid, time, speed float64, dst []float32) error {
	size := s.cols * s.rows
	if grid.Cols != s.cols || grid.Rows != s.rows || len(dst) < size {
		return fmt.Errorf("unexpected field grid %dx%d", grid.Cols, grid.Rows)
	}
	if len(elements) == 0 {
		for i := range dst[:size] {
			dst[i] = 0
		}
		return nil
	}
	if err := s.ensureElementBuffer(len(elements)); err != nil {
		return err
	}
	s.elementData = s.elementData[:0]
	for _, e := range elements {
		s.elementData = append(s.elementData, float32(e.X), float32(e.Y), float32(e.Phase*math.Pi/180))
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.elementBuf, false, 0, s.elementData, nil); err != nil {
		return fmt.Errorf("writing element buffer: %w", err)
	}
	// Reduce the drift on the host; float32 loses the fraction of large times.
	cycles := speed * time
	drift := 2 * math.Pi * (cycles - math.Floor(cycles))
	if err := s.kernel.SetArgs(
		int32(s.cols),
		int32(s.rows),
		float32(grid.Origin.X),
		float32(grid.Origin.Y),
		float32(grid.Step),
		int32(len(elements)),
		float32(drift),
		s.elementBuf,
		s.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{size}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.outBuf, true, 0, dst[:size], nil); err != nil {
		return fmt.Errorf("reading field buffer: %w", err)
	}
	return nil
}

func (s *openCLFieldSampler) Close() {
	if s.elementBuf != nil {
		s.elementBuf.Release()
		s.elementBuf = nil
	}
	if s.outBuf != nil {
		s.outBuf.Release()
		s.outBuf = nil
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *openCLFieldSampler) DeviceName() string {
	return s.deviceName
}
