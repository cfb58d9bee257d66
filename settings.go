package main

import (
	"flag"
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"
)

// settings mirrors the optional INI file:
//
//	[display]
//	show-waves = true
//	show-circles = false
//	speed = 2
//
//	[storage]
//	path = phased-array.db
//
//	[sampling]
//	workers = 4
//	opencl = false
type settings struct {
	Display struct {
		ShowWaves   bool    `gcfg:"show-waves"`
		ShowCircles bool    `gcfg:"show-circles"`
		Speed       float64 `gcfg:"speed"`
	}
	Storage struct {
		Path string `gcfg:"path"`
	}
	Sampling struct {
		Workers int  `gcfg:"workers"`
		OpenCL  bool `gcfg:"opencl"`
	}
}

// currentSettings captures the flag values so keys absent from a settings
// file keep them.
func currentSettings() settings {
	var s settings
	s.Display.ShowWaves = *showWavesFlag
	s.Display.ShowCircles = *showCirclesFlag
	s.Display.Speed = *speedFlag
	s.Storage.Path = *storePathFlag
	s.Sampling.Workers = *workersFlag
	s.Sampling.OpenCL = *useOpenCLFlag
	return s
}

// readSettings parses an INI document over base.
func readSettings(base settings, src string) (settings, error) {
	s := base
	if err := gcfg.ReadStringInto(&s, src); err != nil {
		return base, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.checkInit(); err != nil {
		return base, err
	}
	return s, nil
}

// loadSettingsFile parses path over base.
func loadSettingsFile(base settings, path string) (settings, error) {
	s := base
	if err := gcfg.ReadFileInto(&s, path); err != nil {
		return base, fmt.Errorf("reading settings %q: %w", path, err)
	}
	if err := s.checkInit(); err != nil {
		return base, fmt.Errorf("settings %q: %w", path, err)
	}
	return s, nil
}

func (s *settings) checkInit() error {
	if math.IsNaN(s.Display.Speed) || s.Display.Speed < minSpeed || s.Display.Speed > maxSpeed {
		return fmt.Errorf("speed must be in range [%g, %g], but is %g", minSpeed, maxSpeed, s.Display.Speed)
	}
	if s.Sampling.Workers < 0 {
		return fmt.Errorf("workers must not be negative, but is %d", s.Sampling.Workers)
	}
	if s.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	return nil
}

// applySettings copies s into every flag the user did not set on the
// command line.
func applySettings(s settings) {
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if !explicit["show-waves"] {
		*showWavesFlag = s.Display.ShowWaves
	}
	if !explicit["show-circles"] {
		*showCirclesFlag = s.Display.ShowCircles
	}
	if !explicit["speed"] {
		*speedFlag = s.Display.Speed
	}
	if !explicit["db"] {
		*storePathFlag = s.Storage.Path
	}
	if !explicit["workers"] {
		*workersFlag = s.Sampling.Workers
	}
	if !explicit["opencl"] {
		*useOpenCLFlag = s.Sampling.OpenCL
	}
}
