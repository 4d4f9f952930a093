// seehuhn.de/go/gridder - rasterise vector data onto regular grids
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gridder

import (
	"math"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	const doc = `
reduction = "mean"
line_width_cells = 2.5
fractional_lines = true
presence_threshold = 0.25
fill_value = -9999.0
boundary_convention = "half-open-high"
polygon_mode = "perimeter"
line_cap = "square"
line_join = "bevel"
miter_limit = 4.0
flatness = 0.05
`
	o, err := LoadOptions(strings.NewReader(doc))
	require.NoError(t, err)

	want := Options{
		Reduction:         Mean,
		LineWidth:         2.5,
		Fractional:        true,
		PresenceThreshold: 0.25,
		Fill:              -9999,
		Boundary:          HalfOpenHigh,
		PolygonMode:       PolygonPerimeter,
		LineCap:           "square",
		LineJoin:          "bevel",
		MiterLimit:        4,
		Flatness:          0.05,
	}
	assert.Equal(t, want, o)
}

func TestLoadOptionsDefaults(t *testing.T) {
	o, err := LoadOptions(strings.NewReader(`reduction = "weighted_count"`))
	require.NoError(t, err)
	assert.Equal(t, WeightedCount, o.Reduction)
	assert.True(t, math.IsNaN(o.Fill))
	assert.Equal(t, HalfOpenLow, o.Boundary)
	assert.Equal(t, "butt", o.LineCap)
	assert.Equal(t, "round", o.LineJoin)
	assert.Equal(t, 10.0, o.MiterLimit)
}

func TestLoadOptionsInvalid(t *testing.T) {
	docs := map[string]string{
		"unknown_key":       `bogus = 1`,
		"unknown_reduction": `reduction = "median"`,
		"bad_threshold":     `presence_threshold = 1.5`,
		"negative_width":    `line_width_cells = -1.0`,
		"bad_cap":           `line_cap = "arrow"`,
		"bad_miter":         `miter_limit = 0.5`,
		"bad_boundary":      `boundary_convention = "closed"`,
		"syntax":            `reduction = `,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := LoadOptions(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

// TestOptionsRoundTrip checks that options written as TOML can be read
// back.
func TestOptionsRoundTrip(t *testing.T) {
	o := DefaultOptions()
	o.Reduction = Presence
	o.PresenceThreshold = 0.5
	o.Fill = 0
	o.Boundary = HalfOpenHigh
	o.PolygonMode = PolygonPerimeter
	o.LineWidth = 3

	var buf strings.Builder
	require.NoError(t, toml.NewEncoder(&buf).Encode(o))

	o2, err := LoadOptions(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, o, o2)
}

func TestReductionText(t *testing.T) {
	for r := Count; r <= Coverage; r++ {
		text, err := r.MarshalText()
		require.NoError(t, err)
		var r2 Reduction
		require.NoError(t, r2.UnmarshalText(text))
		assert.Equal(t, r, r2)
	}

	_, err := Reduction(-1).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.Equal(t, "Reduction(99)", Reduction(99).String())
}

func TestPolygonModeText(t *testing.T) {
	for _, m := range []PolygonMode{PolygonFill, PolygonPerimeter} {
		text, err := m.MarshalText()
		require.NoError(t, err)
		var m2 PolygonMode
		require.NoError(t, m2.UnmarshalText(text))
		assert.Equal(t, m, m2)
	}
	var m PolygonMode
	assert.ErrorIs(t, m.UnmarshalText([]byte("outline")), ErrInvalidOptions)
}

func TestValidate(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, o.Validate())

	cases := map[string]func(o *Options){
		"reduction":  func(o *Options) { o.Reduction = 42 },
		"line_width": func(o *Options) { o.LineWidth = math.Inf(1) },
		"threshold":  func(o *Options) { o.PresenceThreshold = math.NaN() },
		"boundary":   func(o *Options) { o.Boundary = 2 },
		"mode":       func(o *Options) { o.PolygonMode = -1 },
		"join":       func(o *Options) { o.LineJoin = "" },
		"flatness":   func(o *Options) { o.Flatness = 0 },
	}
	for name, modify := range cases {
		o := DefaultOptions()
		modify(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalidOptions, name)
	}
}
