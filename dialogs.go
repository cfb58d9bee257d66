package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/zenity"

	"PAS/internal/layout"
)

// dialogResult is posted by a file dialog goroutine and applied in Update,
// keeping Update the only writer of the layout.
type dialogResult struct {
	imported *layout.Configuration
	exported string
	size     int
	err      error
}

var yamlFilters = zenity.FileFilters{{
	Name:     "YAML",
	Patterns: []string{"*.yaml", "*.yml"},
}}

// startExport asks for a file name in the background and writes the current
// layout there as YAML.
func (g *Game) startExport() {
	if g.dialogOpen {
		return
	}
	cfg := g.snapshot(g.name)
	g.dialogOpen = true
	go func() {
		path, err := zenity.SelectFileSave(
			zenity.Title("Export Configuration"),
			zenity.Filename(cfg.FileName()),
			zenity.ConfirmOverwrite(),
			yamlFilters,
		)
		if err != nil {
			g.dialogs <- dialogResult{err: err}
			return
		}
		size, err := writeYAMLFile(path, cfg)
		g.dialogs <- dialogResult{exported: path, size: size, err: err}
	}()
}

// startImport asks for a YAML file in the background and decodes it.
func (g *Game) startImport() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Import Configuration"),
			yamlFilters,
		)
		if err != nil {
			g.dialogs <- dialogResult{err: err}
			return
		}
		cfg, err := readYAMLFile(path)
		if err != nil {
			g.dialogs <- dialogResult{err: err}
			return
		}
		g.dialogs <- dialogResult{imported: &cfg}
	}()
}

// drainDialogs applies any finished dialog without blocking.
func (g *Game) drainDialogs() {
	for {
		select {
		case r := <-g.dialogs:
			g.dialogOpen = false
			g.applyDialogResult(r)
		default:
			return
		}
	}
}

func (g *Game) applyDialogResult(r dialogResult) {
	switch {
	case errors.Is(r.err, zenity.ErrCanceled):
	case r.err != nil:
		log.Printf("File dialog failed: %v", r.err)
		g.status = "import/export failed"
	case r.imported != nil:
		if err := g.applyConfiguration(*r.imported); err != nil {
			log.Printf("Import rejected: %v", err)
			g.status = "import rejected"
			return
		}
		g.status = fmt.Sprintf("imported %q", r.imported.Name)
		log.Printf("Imported %q (%d elements)", r.imported.Name, len(r.imported.Antennas))
	case r.exported != "":
		g.status = fmt.Sprintf("exported %s", r.exported)
		log.Printf("Exported %s to %s", humanize.Bytes(uint64(r.size)), r.exported)
	}
}

// writeYAMLFile encodes cfg into path and returns the number of bytes written.
func writeYAMLFile(path string, cfg layout.Configuration) (int, error) {
	var buf bytes.Buffer
	if err := layout.EncodeYAML(&buf, cfg); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing %q: %w", path, err)
	}
	return buf.Len(), nil
}

// readYAMLFile decodes and validates the configuration in path.
func readYAMLFile(path string) (layout.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Configuration{}, err
	}
	defer f.Close()
	cfg, err := layout.DecodeYAML(f)
	if err != nil {
		return layout.Configuration{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return cfg, nil
}
