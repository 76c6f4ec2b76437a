package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bubbletip/internal/geometry"
)

func samplePlacement() *Placement {
	in := geometry.PlacementInput{
		Anchor:      geometry.Rect{X: 780, Y: 10, Width: 10, Height: 10},
		Host:        geometry.Rect{Width: 800, Height: 600},
		Preferred:   geometry.SideRight,
		Requisition: geometry.Size{Width: 200, Height: 100},
	}
	return NewPlacement(in, geometry.ComputePlacement(in), nil)
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"plain", "json", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewPlacementReport(t *testing.T) {
	r := samplePlacement()
	assert.Equal(t, "right", r.PreferredSide)
	assert.Equal(t, "left", r.FinalSide)
	assert.Equal(t, 190, r.Overshoot["right"])
	assert.Equal(t, -580, r.Overshoot["left"])
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	f, err := NewFormatter(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.FormatPlacement(&buf, samplePlacement()))

	var decoded Placement
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "left", decoded.FinalSide)
}

func TestYAMLFormatterRoundTrips(t *testing.T) {
	f, err := NewFormatter(FormatYAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.FormatPlacement(&buf, samplePlacement()))

	var decoded Placement
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, geometry.Rect{X: 580, Y: 0, Width: 200, Height: 100}, decoded.Bounds)
}

func TestPlainFormatter(t *testing.T) {
	f, err := NewFormatter(FormatPlain)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.FormatPlacement(&buf, samplePlacement()))
	out := buf.String()
	assert.Contains(t, out, "final:")
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "overshoots by 190")
}
