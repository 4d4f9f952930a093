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

import "seehuhn.de/go/geom/vec"

// ScanPoint appends the cell containing p to dst, with weight 1.
// Points outside the open grid extent, including points on its outer
// boundary, contribute nothing.
func (s *Scanner) ScanPoint(dst []Contribution, p Point) ([]Contribution, ScanStats, error) {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return dst, ScanStats{}, invalidGeometry("point (%g, %g) is not finite", p.X, p.Y)
	}

	u := s.grid.ToCell(vec.Vec2(p))
	if !s.insideOpen(u) {
		return dst, ScanStats{Outside: true}, nil
	}
	c := Contribution{
		Row:    s.boundary.index(u.Y),
		Col:    s.boundary.index(u.X),
		Weight: 1,
	}
	return append(dst, c), ScanStats{}, nil
}
