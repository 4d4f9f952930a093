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
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"seehuhn.de/go/pdf/graphics"
)

// Options configures a [Rasterizer]. The zero value is not useful; start
// from [DefaultOptions] and change the fields you need.
type Options struct {
	// Reduction selects the per-cell fold.
	Reduction Reduction `toml:"reduction"`

	// LineWidth is the width of polyline corridors, in cells. In binary
	// mode, lines only widen for LineWidth > 1.
	LineWidth float64 `toml:"line_width_cells"`

	// Fractional makes polylines contribute the exact area fraction of
	// each cell covered by the corridor, instead of weight 1.
	Fractional bool `toml:"fractional_lines"`

	// PresenceThreshold is the weight which a contribution must exceed to
	// set the presence bit. It must lie in [0, 1].
	PresenceThreshold float64 `toml:"presence_threshold"`

	// Fill is stored in cells which were never touched.
	Fill float64 `toml:"fill_value"`

	// Boundary resolves points and lines lying exactly on cell boundaries.
	Boundary Boundary `toml:"boundary_convention"`

	// PolygonMode selects whether polygons are filled or only their rings
	// are traced.
	PolygonMode PolygonMode `toml:"polygon_mode"`

	// LineCap and LineJoin select the corridor shape at the ends and at the
	// interior vertices of wide polylines: "butt", "round" or "square" for
	// caps, "miter", "round" or "bevel" for joins.
	LineCap  string `toml:"line_cap"`
	LineJoin string `toml:"line_join"`

	// MiterLimit caps the length of miter joins. Must be at least 1.
	MiterLimit float64 `toml:"miter_limit"`

	// Flatness is the maximal deviation, in cells, between round caps and
	// joins and their polygon approximations.
	Flatness float64 `toml:"flatness"`
}

// DefaultOptions returns the default configuration: a count reduction with
// NaN as the no-data fill value.
func DefaultOptions() Options {
	return Options{
		Reduction:  Count,
		Fill:       math.NaN(),
		Boundary:   HalfOpenLow,
		LineCap:    "butt",
		LineJoin:   "round",
		MiterLimit: defaultMiterLimit,
		Flatness:   defaultFlatness,
	}
}

// LoadOptions reads options from a TOML document. Keys which are not
// present keep their default values; unknown keys are an error.
func LoadOptions(r io.Reader) (Options, error) {
	o := DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&o)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidOptions, strings.Join(keys, ", "))
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate checks that all option values lie in their valid ranges.
func (o *Options) Validate() error {
	if !o.Reduction.valid() {
		return fmt.Errorf("%w: unknown reduction %d", ErrInvalidOptions, int(o.Reduction))
	}
	if !(o.LineWidth >= 0) || math.IsInf(o.LineWidth, 0) {
		return fmt.Errorf("%w: line width %g", ErrInvalidOptions, o.LineWidth)
	}
	if !(o.PresenceThreshold >= 0 && o.PresenceThreshold <= 1) {
		return fmt.Errorf("%w: presence threshold %g not in [0, 1]", ErrInvalidOptions, o.PresenceThreshold)
	}
	if o.Boundary != HalfOpenLow && o.Boundary != HalfOpenHigh {
		return fmt.Errorf("%w: unknown boundary convention %d", ErrInvalidOptions, int(o.Boundary))
	}
	if o.PolygonMode != PolygonFill && o.PolygonMode != PolygonPerimeter {
		return fmt.Errorf("%w: unknown polygon mode %d", ErrInvalidOptions, int(o.PolygonMode))
	}
	if _, err := parseLineCap(o.LineCap); err != nil {
		return err
	}
	if _, err := parseLineJoin(o.LineJoin); err != nil {
		return err
	}
	if !(o.MiterLimit >= 1) || math.IsInf(o.MiterLimit, 0) {
		return fmt.Errorf("%w: miter limit %g", ErrInvalidOptions, o.MiterLimit)
	}
	if !(o.Flatness > 0) || math.IsInf(o.Flatness, 0) {
		return fmt.Errorf("%w: flatness %g", ErrInvalidOptions, o.Flatness)
	}
	return nil
}

func parseLineCap(name string) (graphics.LineCapStyle, error) {
	switch name {
	case "butt":
		return graphics.LineCapButt, nil
	case "round":
		return graphics.LineCapRound, nil
	case "square":
		return graphics.LineCapSquare, nil
	}
	return 0, fmt.Errorf("%w: unknown line cap %q", ErrInvalidOptions, name)
}

func parseLineJoin(name string) (graphics.LineJoinStyle, error) {
	switch name {
	case "miter":
		return graphics.LineJoinMiter, nil
	case "round":
		return graphics.LineJoinRound, nil
	case "bevel":
		return graphics.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("%w: unknown line join %q", ErrInvalidOptions, name)
}

// PolygonMode selects how polygons are rasterised.
type PolygonMode int

const (
	// PolygonFill rasterises the polygon area with exact coverage.
	PolygonFill PolygonMode = iota

	// PolygonPerimeter traces the rings of the polygon like polylines.
	PolygonPerimeter
)

func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonPerimeter:
		return "perimeter"
	default:
		return fmt.Sprintf("PolygonMode(%d)", int(m))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (m PolygonMode) MarshalText() ([]byte, error) {
	if m != PolygonFill && m != PolygonPerimeter {
		return nil, fmt.Errorf("%w: unknown polygon mode %d", ErrInvalidOptions, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *PolygonMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fill":
		*m = PolygonFill
	case "perimeter":
		*m = PolygonPerimeter
	default:
		return fmt.Errorf("%w: unknown polygon mode %q", ErrInvalidOptions, text)
	}
	return nil
}

const (
	// defaultFlatness is the default tolerance for round caps and joins,
	// in cells.
	defaultFlatness = 0.01

	// defaultMiterLimit is the default miter limit, matching PDF/PostScript.
	defaultMiterLimit = 10.0
)
