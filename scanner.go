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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Scanner converts single geometries into the grid cells they touch,
// together with coverage weights. Create one instance and reuse it for
// many geometries. Internal buffers grow as needed but never shrink.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	grid *GridSpec

	boundary   Boundary
	lineWidth  float64
	fractional bool
	mode       PolygonMode
	cap        graphics.LineCapStyle
	join       graphics.LineJoinStyle
	miterLimit float64
	flatness   float64

	// Coverage engine state (see coverage.go)
	edges    []edge
	active   []int
	cuts     []float64
	strip    []stripEdge
	cover    []float64
	area     []float64
	haveBBox bool
	bx0, bx1 float64 // bounding box of the edges, in cell space
	by0, by1 float64

	// Corridor state (see corridor.go)
	segs    []corridorSegment
	outline []vec.Vec2

	pts  []vec.Vec2        // vertices mapped to cell space
	seen map[cell]struct{} // cells already emitted for the current geometry
}

// ScanStats describes how one geometry related to the grid.
type ScanStats struct {
	// Clipped is set if part of the geometry lies outside the grid.
	Clipped bool

	// Outside is set if the geometry produced no cells because it does not
	// reach into the open grid extent. Geometries on the outer boundary of
	// the grid are outside.
	Outside bool

	// DegenerateSegments counts zero-length polyline segments which were
	// skipped.
	DegenerateSegments int
}

type cell struct {
	row, col int
}

// NewScanner returns a Scanner for the grid g. Only the line, boundary and
// polygon settings of opts are used.
func NewScanner(g *GridSpec, opts Options) (*Scanner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	lineCap, _ := parseLineCap(opts.LineCap)
	lineJoin, _ := parseLineJoin(opts.LineJoin)
	return &Scanner{
		grid:       g,
		boundary:   opts.Boundary,
		lineWidth:  opts.LineWidth,
		fractional: opts.Fractional,
		mode:       opts.PolygonMode,
		cap:        lineCap,
		join:       lineJoin,
		miterLimit: opts.MiterLimit,
		flatness:   opts.Flatness,
		seen:       make(map[cell]struct{}),
	}, nil
}

// toCellSpace maps world coordinates to cell space, using an internal
// buffer for the result.
func (s *Scanner) toCellSpace(pts []vec.Vec2) []vec.Vec2 {
	s.pts = s.pts[:0]
	for _, p := range pts {
		s.pts = append(s.pts, s.grid.ToCell(p))
	}
	return s.pts
}

// outsideGrid reports whether any of the cell space points lies outside
// the grid extent.
func (s *Scanner) outsideGrid(pts []vec.Vec2) bool {
	cols := float64(s.grid.cols)
	rows := float64(s.grid.rows)
	for _, p := range pts {
		if p.X < 0 || p.X > cols || p.Y < 0 || p.Y > rows {
			return true
		}
	}
	return false
}

// insideOpen reports whether the cell space point p lies strictly inside
// the grid extent.
func (s *Scanner) insideOpen(p vec.Vec2) bool {
	return p.X > 0 && p.X < float64(s.grid.cols) && p.Y > 0 && p.Y < float64(s.grid.rows)
}

// touchesGrid reports whether a part of positive length of the cell space
// polyline pts lies inside the open grid extent.
func (s *Scanner) touchesGrid(pts []vec.Vec2) bool {
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		tEnter, tExit, ok := s.clipSegment(pts[i-1], d)
		if !ok {
			continue
		}
		// The clipped segment lies in the closed extent. If its midpoint
		// is on the boundary, so is all of it.
		if s.insideOpen(pts[i-1].Add(d.Mul((tEnter + tExit) / 2))) {
			return true
		}
	}
	return false
}

// polygonTouchesGrid reports whether p reaches into the open grid extent.
// If interior is set, the area of the polygon counts, otherwise only its
// rings do.
func (s *Scanner) polygonTouchesGrid(p Polygon, interior bool) bool {
	c := vec.Vec2{X: float64(s.grid.cols) / 2, Y: float64(s.grid.rows) / 2}
	inside := false
	for _, ring := range p.Rings() {
		pts := s.closedRing(ring)
		if s.touchesGrid(pts) {
			return true
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			if (a.Y > c.Y) != (b.Y > c.Y) && c.X < a.X+(c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) {
				inside = !inside
			}
		}
	}
	// No ring enters the grid, so the grid is either inside the polygon
	// or outside of it.
	return interior && inside
}

// appendCell adds a contribution to dst, merging it into the last entry if
// that entry (at index start or later) refers to the same cell.
func appendCell(dst []Contribution, start, row, col int, w float64) []Contribution {
	if n := len(dst); n > start && dst[n-1].Row == row && dst[n-1].Col == col {
		dst[n-1].Weight = max(dst[n-1].Weight, w)
		return dst
	}
	return append(dst, Contribution{Row: row, Col: col, Weight: w})
}

// Numerical tolerances.
const (
	// weightEpsilon is the smallest weight which is reported.
	weightEpsilon = 1e-12

	// horizontalEdgeThreshold is the minimum vertical extent, in cells, for
	// an edge to contribute to coverage.
	horizontalEdgeThreshold = 1e-12

	// zeroLengthThreshold is the minimum length, in cells, of a line
	// segment. Shorter segments are degenerate.
	zeroLengthThreshold = 1e-10

	// cornerTolerance is the parameter distance below which a line is
	// taken to pass exactly through a lattice corner.
	cornerTolerance = 1e-12

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold is the cosine threshold for detecting cusps
	// (a line doubling back on itself). cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
