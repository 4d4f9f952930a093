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

	"seehuhn.de/go/geom/vec"
)

// ScanPolyline appends the cells touched by l to dst.
//
// By default, lines have zero width and every cell whose intersection with
// the line has positive length is reported with weight 1. If the line
// width is larger than one cell, all cells overlapping the corridor of that
// width around the line are reported instead. In fractional mode, the
// weight is the fraction of the cell covered by the corridor.
//
// Consecutive duplicate cells are merged. Zero-length segments are skipped
// and counted in the returned statistics.
func (s *Scanner) ScanPolyline(dst []Contribution, l Polyline) ([]Contribution, ScanStats, error) {
	var st ScanStats
	if err := l.validate(); err != nil {
		return dst, st, err
	}

	pts := s.toCellSpace(l.Points)
	for i := 1; i < len(pts); i++ {
		if isDegenerate(pts[i-1], pts[i]) {
			st.DegenerateSegments++
			Logger().WithField("segment", i-1).Warn("gridder: skipping zero-length line segment")
		}
	}
	if st.DegenerateSegments == len(pts)-1 {
		return dst, st, invalidGeometry("polyline has only zero-length segments")
	}
	st.Clipped = s.outsideGrid(pts)

	start := len(dst)
	dst = s.scanLine(dst, pts, false)
	if len(dst) == start {
		st.Outside = !s.touchesGrid(pts)
	}
	return dst, st, nil
}

// scanLine appends the cells touched by the cell space polyline pts,
// choosing between the ideal traversal and the corridor according to the
// line settings.
func (s *Scanner) scanLine(dst []Contribution, pts []vec.Vec2, closed bool) []Contribution {
	switch {
	case s.fractional && s.lineWidth > 0:
		return s.scanCorridor(dst, pts, closed)
	case s.lineWidth > 1:
		return s.scanWideLine(dst, pts, closed)
	default:
		return s.traceLine(dst, pts)
	}
}

// traceLine appends the cells crossed by the zero-width polyline pts.
func (s *Scanner) traceLine(dst []Contribution, pts []vec.Vec2) []Contribution {
	start := len(dst)
	for i := 1; i < len(pts); i++ {
		if isDegenerate(pts[i-1], pts[i]) {
			continue
		}
		dst = s.traceSegment(dst, start, pts[i-1], pts[i])
	}
	return dst
}

// traceSegment appends the grid cells which the cell space segment p0→p1
// crosses with positive length. Entries of dst before index start are
// never merged with the new cells.
func (s *Scanner) traceSegment(dst []Contribution, start int, p0, p1 vec.Vec2) []Contribution {
	d := p1.Sub(p0)
	tEnter, tExit, ok := s.clipSegment(p0, d)
	if !ok {
		return dst
	}

	cols := float64(s.grid.cols)
	rows := float64(s.grid.rows)
	q := p0.Add(d.Mul(tEnter))
	q.X = min(max(q.X, 0), cols)
	q.Y = min(max(q.Y, 0), rows)

	col := s.startIndex(q.X, d.X)
	row := s.startIndex(q.Y, d.Y)
	stepX, tMaxX := nextCrossing(p0.X, d.X, col)
	stepY, tMaxY := nextCrossing(p0.Y, d.Y, row)

	// The clipped segment crosses at most this many cell boundaries.
	qEnd := p0.Add(d.Mul(tExit))
	limit := int(math.Abs(qEnd.X-q.X)) + int(math.Abs(qEnd.Y-q.Y)) + 4

	for range limit {
		if s.grid.Contains(row, col) {
			dst = appendCell(dst, start, row, col, 1)
		}

		t := min(tMaxX, tMaxY)
		if t >= tExit {
			break
		}
		switch {
		case math.Abs(tMaxX-tMaxY) <= cornerTolerance:
			// through a lattice corner: the side cells only touch the line
			col += stepX
			row += stepY
			_, tMaxX = nextCrossing(p0.X, d.X, col)
			_, tMaxY = nextCrossing(p0.Y, d.Y, row)
		case tMaxX < tMaxY:
			col += stepX
			_, tMaxX = nextCrossing(p0.X, d.X, col)
		default:
			row += stepY
			_, tMaxY = nextCrossing(p0.Y, d.Y, row)
		}
	}
	return dst
}

// startIndex returns the index of the cell which a line moving with
// velocity du enters at the cell space coordinate u. Lines moving along
// a cell boundary are resolved by the boundary convention.
func (s *Scanner) startIndex(u, du float64) int {
	if u == math.Floor(u) {
		switch {
		case du > 0:
			return HalfOpenLow.index(u)
		case du < 0:
			return HalfOpenLow.index(u) - 1
		}
	}
	return s.boundary.index(u)
}

// nextCrossing returns the step direction along one axis, and the line
// parameter where the line p(t) = p0 + t*d leaves cell i along this axis.
// The parameter is computed from the integer cell boundary each time, so
// that rounding errors do not accumulate.
func nextCrossing(p0, d float64, i int) (step int, t float64) {
	switch {
	case d > 0:
		return 1, (float64(i+1) - p0) / d
	case d < 0:
		return -1, (float64(i) - p0) / d
	default:
		return 0, math.Inf(1)
	}
}

// clipSegment clips the line p0 + t*d, t in [0, 1], to the grid extent
// using the Liang-Barsky algorithm. It reports false if the clipped
// segment has zero length.
func (s *Scanner) clipSegment(p0, d vec.Vec2) (tEnter, tExit float64, ok bool) {
	tEnter, tExit = 0, 1
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			tEnter = max(tEnter, t)
		} else {
			tExit = min(tExit, t)
		}
		return true
	}
	cols := float64(s.grid.cols)
	rows := float64(s.grid.rows)
	if !clip(-d.X, p0.X) || !clip(d.X, cols-p0.X) ||
		!clip(-d.Y, p0.Y) || !clip(d.Y, rows-p0.Y) {
		return 0, 0, false
	}
	if tEnter >= tExit {
		return 0, 0, false
	}
	return tEnter, tExit, true
}

func isDegenerate(p0, p1 vec.Vec2) bool {
	return p1.Sub(p0).Length() < zeroLengthThreshold
}
