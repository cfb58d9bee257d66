package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/dustin/go-humanize"
)

// profiles collects the pprof outputs requested on the command line. Either
// path may be empty.
type profiles struct {
	cpuPath string
	memPath string

	cpuFile *os.File
	once    sync.Once
}

// start opens the CPU profile, if any. The heap profile is written by stop.
func (p *profiles) start() error {
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	p.cpuFile = f
	return nil
}

// stop flushes every requested profile. Calling it again does nothing.
func (p *profiles) stop() {
	p.once.Do(func() {
		if p.cpuFile != nil {
			pprof.StopCPUProfile()
			logProfileSize(p.cpuFile)
			_ = p.cpuFile.Close()
		}
		if p.memPath != "" {
			if err := writeHeapProfile(p.memPath); err != nil {
				log.Printf("Heap profile: %v", err)
			}
		}
	})
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return err
	}
	logProfileSize(f)
	return nil
}

func logProfileSize(f *os.File) {
	if st, err := f.Stat(); err == nil {
		log.Printf("Wrote %s profile to %s", humanize.Bytes(uint64(st.Size())), f.Name())
	}
}
