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
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// corridorSegment represents a line segment in cell space.
type corridorSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// scanCorridor appends the cells covered by the corridor around the cell
// space polyline pts, weighted by the covered area fraction.
func (s *Scanner) scanCorridor(dst []Contribution, pts []vec.Vec2, closed bool) []Contribution {
	s.buildCorridor(pts, closed)
	return s.appendCoverage(dst, fillNonZero)
}

// scanWideLine appends, with weight 1, every cell which is crossed by the
// centre line pts or overlaps its corridor.
func (s *Scanner) scanWideLine(dst []Contribution, pts []vec.Vec2, closed bool) []Contribution {
	start := len(dst)
	dst = s.traceLine(dst, pts)

	clear(s.seen)
	for _, c := range dst[start:] {
		s.seen[cell{c.Row, c.Col}] = struct{}{}
	}

	s.buildCorridor(pts, closed)
	s.fillEdges(fillNonZero, func(row, colMin int, coverage []float64) {
		for i, w := range coverage {
			if w <= weightEpsilon {
				continue
			}
			k := cell{row, colMin + i}
			if _, ok := s.seen[k]; ok {
				continue
			}
			s.seen[k] = struct{}{}
			dst = append(dst, Contribution{Row: k.row, Col: k.col, Weight: 1})
		}
	})
	return dst
}

// buildCorridor fills the edge list with the outline of the area within
// half the line width of the polyline pts. The area is built from one
// quadrilateral per segment, plus the caps at the ends (or the closing
// join, for closed lines) and the joins at the interior vertices. All
// pieces are oriented the same way, so that the nonzero fill rule gives
// their union. For closed lines, the last point of pts must equal the
// first one.
func (s *Scanner) buildCorridor(pts []vec.Vec2, closed bool) {
	s.segs = s.segs[:0]
	for i := 1; i < len(pts); i++ {
		s.addCorridorSegment(pts[i-1], pts[i])
	}

	s.beginEdges()
	if len(s.segs) == 0 {
		return
	}

	d := s.lineWidth / 2
	for i := range s.segs {
		seg := &s.segs[i]
		s.outline = append(s.outline[:0],
			seg.A.Add(seg.N.Mul(d)),
			seg.B.Add(seg.N.Mul(d)),
			seg.B.Sub(seg.N.Mul(d)),
			seg.A.Sub(seg.N.Mul(d)),
		)
		s.addPiece()

		if i+1 < len(s.segs) {
			s.addJoin(seg.B, seg.T, s.segs[i+1].T, d)
		}
	}

	first := &s.segs[0]
	last := &s.segs[len(s.segs)-1]
	if closed {
		s.addJoin(first.A, last.T, first.T, d)
	} else {
		s.addCap(first.A, first.T.Mul(-1), d)
		s.addCap(last.B, last.T, d)
	}
}

// addCorridorSegment adds a line segment to the segment buffer.
func (s *Scanner) addCorridorSegment(a, b vec.Vec2) {
	v := b.Sub(a)
	length := v.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := v.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	s.segs = append(s.segs, corridorSegment{A: a, B: b, T: t, N: n})
}

// addPiece adds the polygon in s.outline to the edge list, oriented
// counter-clockwise.
func (s *Scanner) addPiece() {
	poly := s.outline
	if len(poly) < 3 {
		return
	}
	if ringArea(poly) < 0 {
		slices.Reverse(poly)
	}
	for j := 1; j < len(poly); j++ {
		s.addEdge(poly[j-1], poly[j])
	}
	s.addEdge(poly[len(poly)-1], poly[0])
}

// addCap adds a line cap at point P.
// T is the outward tangent direction (away from the line).
// d is half the line width.
func (s *Scanner) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch s.cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.outline = append(s.outline[:0],
			P.Add(N.Mul(d)),
			ext.Add(N.Mul(d)),
			ext.Sub(N.Mul(d)),
			P.Sub(N.Mul(d)),
		)
		s.addPiece()

	case graphics.LineCapRound:
		// half disc, sweeping from +N through T to -N
		s.outline = s.outline[:0]
		s.addArc(P, d, N, -math.Pi, true)
		s.addPiece()
	}
}

// addJoin adds a line join at point P, where the tangent changes from T1
// to T2. d is half the line width.
func (s *Scanner) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X

	if cosTheta < cuspCosineThreshold {
		// The line doubles back on itself.
		s.addCap(P, T1, d)
		s.addCap(P, T2.Mul(-1), d)
		return
	}
	if math.Abs(sinTheta) < collinearityThreshold {
		return
	}

	// For a left turn the outer side of the corner is -N.
	side := 1.0
	if sinTheta > 0 {
		side = -1
	}
	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}.Mul(side)
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}.Mul(side)
	o1 := P.Add(N1.Mul(d))
	o2 := P.Add(N2.Mul(d))

	switch s.join {
	case graphics.LineJoinMiter:
		// The miter length relative to d is 1/cos(θ/2), where θ is the
		// angle between the tangents.
		cosHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if cosHalf > 0 && 1/cosHalf <= s.miterLimit+miterEpsilon {
			bisector := N1.Add(N2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				miterPt := P.Add(bisector.Mul(d / (cosHalf * l)))
				s.outline = append(s.outline[:0], P, o1, miterPt, o2)
				s.addPiece()
			}
			return
		}
		// miter limit exceeded
		fallthrough

	case graphics.LineJoinBevel:
		s.outline = append(s.outline[:0], P, o1, o2)
		s.addPiece()

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta < 0 {
			angle = -angle
		}
		s.outline = append(s.outline[:0], P)
		s.addArc(P, d, N1, angle, true)
		s.addPiece()
	}
}

// addArc appends arc vertices to s.outline.
// center is the arc center, radius is the arc radius.
// startDir is the unit vector from center to arc start.
// sweep is the sweep angle in radians (positive = CCW).
// includeStart indicates whether to include the start point.
func (s *Scanner) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	// For a chord subtending angle θ on a circle of radius r, the maximum
	// deviation is r*(1 - cos(θ/2)). For this to equal the flatness ε,
	// θ = 2*acos(1 - ε/r).
	n := 1
	if radius > s.flatness {
		angleStep := 2 * math.Acos(1-s.flatness/radius)
		if angleStep <= 0 || math.IsNaN(angleStep) {
			angleStep = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)
	}

	dt := sweep / float64(n)
	first := 1
	if includeStart {
		first = 0
	}
	for i := first; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		s.outline = append(s.outline, center.Add(dir.Mul(radius)))
	}
}
