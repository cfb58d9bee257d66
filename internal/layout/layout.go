// Package layout holds the named array configurations users save, export and
// import: a set of elements plus an optional steering target.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"PAS/internal/array"
)

// MaxCoordinate bounds element and target coordinates, in wavelengths.
const MaxCoordinate = 1e4

// ErrInvalidConfiguration is wrapped by every validation and decode failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration is a named, persisted array layout.
type Configuration struct {
	Name     string          `json:"name" yaml:"name"`
	Antennas []array.Element `json:"antennas" yaml:"antennas"`
	Target   *array.Point    `json:"target" yaml:"target"`
}

// Validate reports the first problem that would make c unusable by the
// array core.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidConfiguration)
	}
	for i, a := range c.Antennas {
		if err := checkCoord(a.X, "antenna", i, "x"); err != nil {
			return err
		}
		if err := checkCoord(a.Y, "antenna", i, "y"); err != nil {
			return err
		}
		if math.IsNaN(a.Phase) || a.Phase < 0 || a.Phase >= 360 {
			return fmt.Errorf("%w: antenna %d phase must be in range [0, 360), but is %g",
				ErrInvalidConfiguration, i, a.Phase)
		}
	}
	if c.Target != nil {
		if err := checkCoord(c.Target.X, "target", -1, "x"); err != nil {
			return err
		}
		if err := checkCoord(c.Target.Y, "target", -1, "y"); err != nil {
			return err
		}
	}
	return nil
}

func checkCoord(v float64, what string, idx int, axis string) error {
	if !math.IsNaN(v) && math.Abs(v) <= MaxCoordinate {
		return nil
	}
	if idx >= 0 {
		what = fmt.Sprintf("%s %d", what, idx)
	}
	return fmt.Errorf("%w: %s %s must be in range [-%g, %g], but is %g",
		ErrInvalidConfiguration, what, axis, MaxCoordinate, MaxCoordinate, v)
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	out := Configuration{Name: c.Name}
	if c.Antennas != nil {
		out.Antennas = append([]array.Element(nil), c.Antennas...)
	}
	if c.Target != nil {
		t := *c.Target
		out.Target = &t
	}
	return out
}

// FileName returns the export file name for c.
func (c Configuration) FileName() string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(c.Name))
	if name == "" {
		name = "configuration"
	}
	return name + ".yaml"
}

// EncodeYAML writes c as a YAML document.
func EncodeYAML(w io.Writer, c Configuration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding %q: %w", c.Name, err)
	}
	return enc.Close()
}

// DecodeYAML reads a single configuration. Unknown keys, malformed documents
// and values that fail Validate are rejected; on error the returned
// configuration is the zero value so callers cannot apply part of it.
func DecodeYAML(r io.Reader) (Configuration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Configuration
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Configuration{}, fmt.Errorf("%w: empty document", ErrInvalidConfiguration)
		}
		return Configuration{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// MarshalList encodes saved configurations as a JSON array.
func MarshalList(configs []Configuration) ([]byte, error) {
	if configs == nil {
		configs = []Configuration{}
	}
	return json.Marshal(configs)
}

// UnmarshalList decodes a JSON array written by MarshalList. Empty input is
// an empty list.
func UnmarshalList(data []byte) ([]Configuration, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var configs []Configuration
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	for i, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return configs, nil
}
