package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"

	"PAS/internal/array"
	"PAS/internal/store"
)

// saveCurrent appends the current layout to the saved configurations.
func (g *Game) saveCurrent(name string) {
	if g.store == nil {
		g.status = "saved configurations unavailable"
		return
	}
	saved, err := g.store.Save(g.snapshot(name))
	if err != nil {
		log.Printf("Saving %q failed: %v", name, err)
		g.status = "save failed"
		return
	}
	g.name = saved.Name
	g.status = fmt.Sprintf("saved %q", saved.Name)
	log.Printf("Saved %q (%d elements)", saved.Name, len(saved.Antennas))
}

// loadNextSaved cycles through the saved configurations, oldest first.
func (g *Game) loadNextSaved() {
	if g.store == nil {
		g.status = "saved configurations unavailable"
		return
	}
	list, err := g.store.List()
	if err != nil {
		log.Printf("Listing saved configurations failed: %v", err)
		return
	}
	if len(list) == 0 {
		g.status = "no saved configurations"
		return
	}
	s := list[g.savedIndex%len(list)]
	g.savedIndex = (g.savedIndex + 1) % len(list)
	if err := g.applyConfiguration(s.Configuration); err != nil {
		log.Printf("Saved configuration %q is unusable: %v", s.Name, err)
		g.status = "load failed"
		return
	}
	g.status = fmt.Sprintf("loaded %q", s.Name)
	log.Printf("Loaded %q saved %s", s.Name, humanize.Time(s.SavedAt))
}

// loadNamed opens the newest saved configuration called name.
func (g *Game) loadNamed(name string) error {
	if g.store == nil {
		return errors.New("saved configurations unavailable")
	}
	s, err := g.store.Load(name)
	if err != nil {
		return err
	}
	return g.applyConfiguration(s.Configuration)
}

// runStoreCommands executes the headless -list, -export-json, and
// -import-json flags. handled reports whether one of them ran.
func runStoreCommands(db *store.DB, out io.Writer) (handled bool, err error) {
	if !*listFlag && *exportJSONFlag == "" && *importJSONFlag == "" {
		return false, nil
	}
	if db == nil {
		return true, errors.New("saved configurations unavailable")
	}
	if *importJSONFlag != "" {
		if err := importJSONFile(db, *importJSONFlag, out); err != nil {
			return true, err
		}
	}
	if *exportJSONFlag != "" {
		if err := exportJSONFile(db, *exportJSONFlag, out); err != nil {
			return true, err
		}
	}
	if *listFlag {
		if err := listSaved(db, out); err != nil {
			return true, err
		}
	}
	return true, nil
}

// listSaved prints one line per saved configuration.
func listSaved(db *store.DB, out io.Writer) error {
	list, err := db.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "no saved configurations")
		return nil
	}
	for _, s := range list {
		target := "none"
		if s.Target != nil {
			target = fmt.Sprintf("(%.2f, %.2f)", s.Target.X, s.Target.Y)
		}
		peak := "-"
		p, err := array.ComputeGainPatternParallel(context.Background(),
			array.ComputePhases(s.Antennas, s.Target), runtime.NumCPU())
		if err != nil {
			return err
		}
		if !p.Empty() {
			peak = fmt.Sprintf("%d°", p.Peak())
		}
		fmt.Fprintf(out, "%-24s %3d elements  target %-16s peak %-5s saved %s\n",
			s.Name, len(s.Antennas), target, peak, humanize.Time(s.SavedAt))
	}
	return nil
}

// exportJSONFile writes every saved configuration to path as a JSON array.
func exportJSONFile(db *store.DB, path string, out io.Writer) error {
	data, err := db.ExportJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	fmt.Fprintf(out, "exported %s to %s\n", humanize.Bytes(uint64(len(data))), path)
	return nil
}

// importJSONFile replaces the saved configurations with the array in path.
func importJSONFile(db *store.DB, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	n, err := db.ImportJSON(data)
	if err != nil {
		return fmt.Errorf("importing %q: %w", path, err)
	}
	fmt.Fprintf(out, "imported %d configurations from %s\n", n, path)
	return nil
}
