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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ScanPolygon appends the cells covered by p to dst.
//
// In fill mode, the weight of each cell is the exact fraction of the cell
// area covered by the polygon, where the interior is given by the even-odd
// rule over all rings. Cells with weight below 1e-12 are omitted. An edge
// lying on a cell boundary contributes no area to the cell on its outside.
//
// In perimeter mode, the rings are traced like closed polylines.
func (s *Scanner) ScanPolygon(dst []Contribution, p Polygon) ([]Contribution, ScanStats, error) {
	var st ScanStats
	if err := p.validate(); err != nil {
		return dst, st, err
	}

	first := len(dst)
	if s.mode == PolygonPerimeter {
		for _, ring := range p.Rings() {
			pts := s.closedRing(ring)
			st.Clipped = st.Clipped || s.outsideGrid(pts)
			start := len(dst)
			dst = s.scanLine(dst, pts, true)
			dst = mergeRingEnds(dst, start)
		}
	} else {
		s.collectPathEdges(p.Path())
		st.Clipped = s.bboxClipped()
		dst = s.appendCoverage(dst, fillEvenOdd)
	}

	if len(dst) == first {
		st.Outside = !s.polygonTouchesGrid(p, s.mode == PolygonFill)
	}
	return dst, st, nil
}

// FillPath appends the area coverage of the world space path p to dst,
// using the nonzero winding rule if nonZero is set and the even-odd rule
// otherwise. Open subpaths are closed implicitly, and curves are flattened
// to within the configured flatness (in cells).
func (s *Scanner) FillPath(dst []Contribution, p *path.Data, nonZero bool) []Contribution {
	rule := fillEvenOdd
	if nonZero {
		rule = fillNonZero
	}
	s.collectPathEdges(p)
	return s.appendCoverage(dst, rule)
}

// appendCoverage fills the current edge list and appends the resulting
// cells to dst.
func (s *Scanner) appendCoverage(dst []Contribution, rule fillRule) []Contribution {
	s.fillEdges(rule, func(row, colMin int, coverage []float64) {
		for i, w := range coverage {
			if w > weightEpsilon {
				dst = append(dst, Contribution{Row: row, Col: colMin + i, Weight: w})
			}
		}
	})
	return dst
}

// closedRing maps a ring to cell space and repeats the first vertex at the
// end, unless this is already the case.
func (s *Scanner) closedRing(ring []vec.Vec2) []vec.Vec2 {
	pts := s.toCellSpace(ring)
	if pts[len(pts)-1] != pts[0] {
		pts = append(pts, pts[0])
		s.pts = pts
	}
	return pts
}

// mergeRingEnds merges the last cell of a traced ring into its first cell,
// if both are the same. The ring starts at index start of dst.
func mergeRingEnds(dst []Contribution, start int) []Contribution {
	n := len(dst)
	if n-start < 2 {
		return dst
	}
	first, last := &dst[start], dst[n-1]
	if first.Row == last.Row && first.Col == last.Col {
		first.Weight = max(first.Weight, last.Weight)
		return dst[:n-1]
	}
	return dst
}
