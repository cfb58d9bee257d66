package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSettings() settings {
	var s settings
	s.Display.ShowWaves = true
	s.Display.Speed = defaultSpeed
	s.Storage.Path = defaultStorePath
	return s
}

func TestReadSettingsOverridesGivenKeys(t *testing.T) {
	src := `
[display]
show-circles = true
speed = 3.5

[sampling]
workers = 6
`
	s, err := readSettings(baseSettings(), src)
	require.NoError(t, err)
	assert.True(t, s.Display.ShowWaves)
	assert.True(t, s.Display.ShowCircles)
	assert.Equal(t, 3.5, s.Display.Speed)
	assert.Equal(t, 6, s.Sampling.Workers)
	assert.Equal(t, defaultStorePath, s.Storage.Path)
}

func TestReadSettingsRejectsOutOfRange(t *testing.T) {
	cases := []string{
		"[display]\nspeed = 9\n",
		"[display]\nspeed = 0\n",
		"[sampling]\nworkers = -1\n",
		"[storage]\npath =\n",
		"[nosuch]\nkey = 1\n",
	}
	for _, src := range cases {
		s, err := readSettings(baseSettings(), src)
		assert.Error(t, err, src)
		assert.Equal(t, baseSettings(), s, src)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pas.ini")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\npath = other.db\n"), 0o644))

	s, err := loadSettingsFile(baseSettings(), path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", s.Storage.Path)

	_, err = loadSettingsFile(baseSettings(), filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestApplySettingsFillsUnsetFlags(t *testing.T) {
	saved := currentSettings()
	t.Cleanup(func() { applySettings(saved) })

	s := baseSettings()
	s.Display.Speed = 4.2
	s.Display.ShowCircles = true
	s.Sampling.Workers = 3
	applySettings(s)

	assert.Equal(t, 4.2, *speedFlag)
	assert.True(t, *showCirclesFlag)
	assert.Equal(t, 3, *workersFlag)
	assert.Equal(t, s, currentSettings())
}
