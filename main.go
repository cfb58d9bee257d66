package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"PAS/internal/store"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	if *settingsFlag != "" {
		s, err := loadSettingsFile(currentSettings(), *settingsFlag)
		if err != nil {
			log.Fatalf("Settings: %v", err)
		}
		applySettings(s)
	}

	db, err := store.Open(*storePathFlag)
	if err != nil {
		log.Printf("Saved configurations disabled: %v", err)
		db = nil
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	handled, err := runStoreCommands(db, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if handled {
		return
	}

	prof := &profiles{cpuPath: *cpuProfileFlag, memPath: *memProfileFlag}
	if err := prof.start(); err != nil {
		log.Fatalf("%v", err)
	}
	defer prof.stop()

	g := newGame(gameOptions{
		speed:       *speedFlag,
		showWaves:   *showWavesFlag,
		showCircles: *showCirclesFlag,
		showDebug:   *debugFlag,
		enableAudio: *enableAudioFlag,
		sampler:     chooseSampler(),
		store:       db,
	})
	defer g.Close()

	if *loadFlag != "" {
		if err := g.loadNamed(*loadFlag); err != nil {
			log.Printf("Loading %q failed: %v", *loadFlag, err)
		}
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Phased Array Simulator")
	ebiten.SetTPS(int(defaultTPS))
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Run: %v", err)
	}
}

// chooseSampler returns the OpenCL sampler when requested and available, or
// the CPU worker pool.
func chooseSampler() fieldSampler {
	if *useOpenCLFlag {
		cols, rows := w/fieldResolution, h/fieldResolution
		s, err := newOpenCLFieldSampler(cols, rows)
		if err == nil {
			log.Printf("Sampling field with OpenCL on %s", s.DeviceName())
			return s
		}
		log.Printf("OpenCL unavailable, using CPU: %v", err)
	}
	return newCPUFieldSampler(*workersFlag)
}
