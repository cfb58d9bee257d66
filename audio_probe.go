package main

import (
	"math"
	"sync"
)

// probeAudioStream plays a steady tone whose loudness follows the field
// intensity under the cursor. It produces 16-bit little-endian stereo PCM.
type probeAudioStream struct {
	mu     sync.Mutex
	level  float64
	amp    float64
	phase  float64
	stepHz float64
}

func newProbeAudioStream() *probeAudioStream {
	return &probeAudioStream{stepHz: 2 * math.Pi * probeToneHz / audioSampleRate}
}

// SetLevel sets the target loudness, clamped to [0, 1].
func (s *probeAudioStream) SetLevel(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.mu.Lock()
	s.level = v
	s.mu.Unlock()
}

func (s *probeAudioStream) Read(p []byte) (int, error) {
	// Ensure we generate whole stereo frames (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < frameBytes; i += 4 {
		// Glide toward the target level so cursor moves do not click.
		s.amp += probeSmoothing * (s.level - s.amp)
		v := int16(math.Sin(s.phase) * s.amp * pcm16MaxValue)
		s.phase += s.stepHz
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *probeAudioStream) Close() error {
	return nil
}
