package layout

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PAS/internal/array"
)

func sample() Configuration {
	return Configuration{
		Name: "pair",
		Antennas: []array.Element{
			{X: -1, Y: 0, Phase: 0},
			{X: 1, Y: 0, Phase: 321.9},
		},
		Target: &array.Point{X: 1, Y: -2},
	}
}

func TestYAMLExportImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, sample()))
	assert.Contains(t, buf.String(), "name: pair")
	assert.Contains(t, buf.String(), "antennas:")

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestDecodeYAMLNullTarget(t *testing.T) {
	doc := `name: lone
antennas:
  - x: 0.5
    y: 1.5
    phase: 90
target: null
`
	got, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Nil(t, got.Target)
	assert.Equal(t, []array.Element{{X: 0.5, Y: 1.5, Phase: 90}}, got.Antennas)
}

func TestDecodeYAMLRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"garbage", "{{{"},
		{"unknown key", "name: a\nantennas: []\ncolour: red\n"},
		{"wrong type", "name: a\nantennas: nope\n"},
		{"missing name", "antennas: []\n"},
		{"phase out of range", "name: a\nantennas:\n  - {x: 0, y: 0, phase: 360}\n"},
		{"negative phase", "name: a\nantennas:\n  - {x: 0, y: 0, phase: -1}\n"},
		{"nan coordinate", "name: a\nantennas:\n  - {x: .nan, y: 0, phase: 0}\n"},
		{"infinite target", "name: a\nantennas: []\ntarget: {x: .inf, y: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeYAML(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Equal(t, Configuration{}, got)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, sample().Validate())

	c := sample()
	c.Antennas[1].X = math.Inf(-1)
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "antenna 1 x")

	c = sample()
	c.Target.Y = 2 * MaxCoordinate
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfiguration)
}

func TestListRoundTripsAsJSONArray(t *testing.T) {
	data, err := MarshalList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = MarshalList([]Configuration{sample()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[{"))
	assert.Contains(t, string(data), `"target":{"x":1,"y":-2}`)

	got, err := UnmarshalList(data)
	require.NoError(t, err)
	assert.Equal(t, []Configuration{sample()}, got)

	got, err = UnmarshalList([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = UnmarshalList([]byte(`[{"name":"x","antennas":[{"x":0,"y":0,"phase":400}],"target":null}]`))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestCloneIsDeep(t *testing.T) {
	a := sample()
	b := a.Clone()
	b.Antennas[0].X = 42
	b.Target.X = 42
	assert.Equal(t, -1.0, a.Antennas[0].X)
	assert.Equal(t, 1.0, a.Target.X)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "pair.yaml", sample().FileName())
	assert.Equal(t, "a_b.yaml", Configuration{Name: "a/b"}.FileName())
	assert.Equal(t, "configuration.yaml", Configuration{Name: "  "}.FileName())
}
