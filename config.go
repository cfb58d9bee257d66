package main

import "time"

// Window, animation, and interaction constants for the phased array
// visualizer. One grid cell is one wavelength and the world origin sits in
// the middle of the window with y pointing up.
const (
	w, h               = 800, 800
	gridCells          = 10
	cellPixels         = w / gridCells
	fieldResolution    = 4
	defaultTPS         = 60.0
	defaultSpeed       = 2.0
	minSpeed           = 0.1
	maxSpeed           = 5.0
	speedStep          = 0.1
	elementRadius      = cellPixels / 4
	phaseStepDegrees   = 15.0
	chartSize          = w / 4
	chartMargin        = 10
	trashSize          = w / 8
	trashMargin        = 16
	audioSampleRate    = 48000
	audioBufferLatency = 80 * time.Millisecond
	probeToneHz        = 440.0
	probeSmoothing     = 0.002
	pcm16MaxValue      = 32767
	sampleLogInterval  = 5 * time.Second
	defaultStorePath   = "phased-array.db"
)
