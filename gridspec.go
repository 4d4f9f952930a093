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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// GridSpec describes a regular raster domain. Column c covers x values
// between X0+c*Dx and X0+(c+1)*Dx, and row r covers y values between
// Y0+r*Dy and Y0+(r+1)*Dy. Either cell size may be negative; a negative Dy
// gives rows which increase downward.
//
// Internally, coordinates are mapped to "cell space", where cell (r, c) is
// the unit square [c, c+1)×[r, r+1). Since the map is affine, area fractions
// in cell space equal area fractions in world space.
//
// A GridSpec is immutable and safe for concurrent use.
type GridSpec struct {
	x0, y0     float64
	dx, dy     float64
	rows, cols int

	toWorld matrix.Matrix // cell space to world space
}

// NewGridSpec returns the grid with origin (x0, y0), cell size (dx, dy) and
// the given number of rows and columns.
func NewGridSpec(x0, y0, dx, dy float64, rows, cols int) (*GridSpec, error) {
	switch {
	case !isFinite(x0) || !isFinite(y0):
		return nil, fmt.Errorf("%w: origin (%g, %g) is not finite", ErrInvalidGrid, x0, y0)
	case dx == 0 || !isFinite(dx):
		return nil, fmt.Errorf("%w: cell width %g", ErrInvalidGrid, dx)
	case dy == 0 || !isFinite(dy):
		return nil, fmt.Errorf("%w: cell height %g", ErrInvalidGrid, dy)
	case rows <= 0 || cols <= 0:
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrInvalidGrid, rows, cols)
	}

	return &GridSpec{
		x0: x0, y0: y0,
		dx: dx, dy: dy,
		rows: rows, cols: cols,
		toWorld: matrix.Matrix{dx, 0, 0, dy, x0, y0},
	}, nil
}

// NewGridSpecFromBounds returns a grid covering the rectangle b with the
// given resolution. The number of rows and columns is the smallest number of
// cells which covers b; the grid may therefore extend beyond b on the high
// side. Positive steps place the origin at the low corner of b, negative
// steps at the high corner.
func NewGridSpecFromBounds(b rect.Rect, dx, dy float64) (*GridSpec, error) {
	w := b.URx - b.LLx
	h := b.URy - b.LLy
	if !(w > 0) || !(h > 0) || !isFinite(w) || !isFinite(h) {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalidGrid, b)
	}
	if dx == 0 || dy == 0 || !isFinite(dx) || !isFinite(dy) {
		return nil, fmt.Errorf("%w: cell size %g×%g", ErrInvalidGrid, dx, dy)
	}

	x0 := b.LLx
	if dx < 0 {
		x0 = b.URx
	}
	y0 := b.LLy
	if dy < 0 {
		y0 = b.URy
	}
	return NewGridSpec(x0, y0, dx, dy, stepsCovering(h, math.Abs(dy)), stepsCovering(w, math.Abs(dx)))
}

// NewGridSpecFromCenters returns a grid where (xc, yc) is the centre of
// cell (0, 0), rather than its corner.
func NewGridSpecFromCenters(xc, yc, dx, dy float64, rows, cols int) (*GridSpec, error) {
	return NewGridSpec(xc-dx/2, yc-dy/2, dx, dy, rows, cols)
}

// stepsCovering returns the number of steps needed to cover ext.
// Ratios within a relative tolerance of an integer are rounded down, so
// that e.g. 1/0.1 gives 10 cells and not 11.
func stepsCovering(ext, step float64) int {
	n := ext / step
	return max(int(math.Ceil(n-n*stepsTolerance)), 1)
}

// Rows returns the number of rows of the grid.
func (g *GridSpec) Rows() int { return g.rows }

// Cols returns the number of columns of the grid.
func (g *GridSpec) Cols() int { return g.cols }

// Origin returns the corner of cell (0, 0) which is furthest from all other
// cells.
func (g *GridSpec) Origin() vec.Vec2 { return vec.Vec2{X: g.x0, Y: g.y0} }

// CellSize returns the signed cell width and height.
func (g *GridSpec) CellSize() (dx, dy float64) { return g.dx, g.dy }

// CellArea returns the area of a single cell in world units.
func (g *GridSpec) CellArea() float64 { return math.Abs(g.dx * g.dy) }

// Transform returns the affine map from cell space to world space.
func (g *GridSpec) Transform() matrix.Matrix { return g.toWorld }

// Contains reports whether (row, col) addresses a cell of the grid.
func (g *GridSpec) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// ToCell maps a world coordinate to cell space.
func (g *GridSpec) ToCell(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (p.X - g.x0) / g.dx, Y: (p.Y - g.y0) / g.dy}
}

// ToWorld maps a cell space coordinate to world space.
func (g *GridSpec) ToWorld(p vec.Vec2) vec.Vec2 {
	m := g.toWorld
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// CellOf returns the cell containing (x, y), using the half-open-low
// convention for points on cell boundaries. The result may lie outside the
// grid; use [GridSpec.Contains] to check.
func (g *GridSpec) CellOf(x, y float64) (row, col int) {
	return g.Locate(x, y, HalfOpenLow)
}

// Locate returns the cell containing (x, y), resolving points on cell
// boundaries using b. Cells, as seen from Locate, partition the plane.
func (g *GridSpec) Locate(x, y float64, b Boundary) (row, col int) {
	p := g.ToCell(vec.Vec2{X: x, Y: y})
	return b.index(p.Y), b.index(p.X)
}

// BoundsOf returns the world space extent of cell (row, col).
func (g *GridSpec) BoundsOf(row, col int) (xmin, xmax, ymin, ymax float64) {
	c := g.Cell(row, col)
	return c.LLx, c.URx, c.LLy, c.URy
}

// Cell returns the world space rectangle of cell (row, col).
func (g *GridSpec) Cell(row, col int) rect.Rect {
	a := g.ToWorld(vec.Vec2{X: float64(col), Y: float64(row)})
	b := g.ToWorld(vec.Vec2{X: float64(col + 1), Y: float64(row + 1)})
	return rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
}

// CenterOf returns the world space centre of cell (row, col).
func (g *GridSpec) CenterOf(row, col int) vec.Vec2 {
	return g.ToWorld(vec.Vec2{X: float64(col) + 0.5, Y: float64(row) + 0.5})
}

// Extent returns the world space rectangle covered by the whole grid.
func (g *GridSpec) Extent() rect.Rect {
	a := g.ToWorld(vec.Vec2{})
	b := g.ToWorld(vec.Vec2{X: float64(g.cols), Y: float64(g.rows)})
	return rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
}

// Boundary selects which cell owns a point lying exactly on the boundary
// between two cells.
type Boundary int

const (
	// HalfOpenLow assigns boundary points to the cell with the higher
	// index: cells are [i, i+1) in cell space.
	HalfOpenLow Boundary = iota

	// HalfOpenHigh assigns boundary points to the cell with the lower
	// index: cells are (i, i+1] in cell space.
	HalfOpenHigh
)

// index returns the cell index of the cell space coordinate u.
func (b Boundary) index(u float64) int {
	var f float64
	if b == HalfOpenHigh {
		f = math.Ceil(u) - 1
	} else {
		f = math.Floor(u)
	}
	// Keep far-away coordinates representable; they are out of range anyway.
	f = max(min(f, maxCellIndex), -maxCellIndex)
	return int(f)
}

func (b Boundary) String() string {
	switch b {
	case HalfOpenLow:
		return "half-open-low"
	case HalfOpenHigh:
		return "half-open-high"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (b Boundary) MarshalText() ([]byte, error) {
	if b != HalfOpenLow && b != HalfOpenHigh {
		return nil, fmt.Errorf("%w: unknown boundary convention %d", ErrInvalidOptions, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *Boundary) UnmarshalText(text []byte) error {
	switch string(text) {
	case "half-open-low", "low":
		*b = HalfOpenLow
	case "half-open-high", "high":
		*b = HalfOpenHigh
	default:
		return fmt.Errorf("%w: unknown boundary convention %q", ErrInvalidOptions, text)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

const (
	// stepsTolerance is the relative tolerance used when deriving the
	// number of cells from an extent and a step.
	stepsTolerance = 1e-9

	// maxCellIndex bounds cell indices computed from far-away coordinates.
	maxCellIndex = 1 << 52
)
