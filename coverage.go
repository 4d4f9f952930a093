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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment in cell space.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
	dir    int     // +1 if y increases along the edge, -1 otherwise
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// stripEdge is an edge spanning the current strip, with its x position at
// the middle of the strip.
type stripEdge struct {
	idx int
	x   float64
}

// fillRule identifies which fill rule to apply.
type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (rule fillRule) inside(winding int) bool {
	if rule == fillEvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// beginEdges clears the edge list.
func (s *Scanner) beginEdges() {
	s.edges = s.edges[:0]
	s.haveBBox = false
}

// addEdge adds an edge between two cell space points.
func (s *Scanner) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	dir := 1
	if dy < 0 {
		dir = -1
	}
	s.edges = append(s.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
		dir:  dir,
	})

	if !s.haveBBox {
		s.bx0, s.bx1 = min(p0.X, p1.X), max(p0.X, p1.X)
		s.by0, s.by1 = min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		s.haveBBox = true
	} else {
		s.bx0 = min(s.bx0, p0.X, p1.X)
		s.bx1 = max(s.bx1, p0.X, p1.X)
		s.by0 = min(s.by0, p0.Y, p1.Y)
		s.by1 = max(s.by1, p0.Y, p1.Y)
	}
}

// bboxClipped reports whether the edges extend beyond the grid.
func (s *Scanner) bboxClipped() bool {
	return s.haveBBox && (s.bx0 < 0 || s.by0 < 0 ||
		s.bx1 > float64(s.grid.cols) || s.by1 > float64(s.grid.rows))
}

// collectPathEdges walks the path, maps it to cell space, and builds the
// edge list. Curves are flattened, and open subpaths are closed.
func (s *Scanner) collectPathEdges(p *path.Data) {
	s.beginEdges()

	var current vec.Vec2 // current point (cell space)
	var subpath vec.Vec2 // subpath start (cell space)

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != subpath {
				s.addEdge(current, subpath)
			}
			current = s.grid.ToCell(p.Coords[coordIdx])
			subpath = current
			coordIdx++

		case path.CmdLineTo:
			next := s.grid.ToCell(p.Coords[coordIdx])
			s.addEdge(current, next)
			current = next
			coordIdx++

		case path.CmdQuadTo:
			c := s.grid.ToCell(p.Coords[coordIdx])
			next := s.grid.ToCell(p.Coords[coordIdx+1])
			s.flattenQuadratic(current, c, next, s.addEdge)
			current = next
			coordIdx += 2

		case path.CmdCubeTo:
			c1 := s.grid.ToCell(p.Coords[coordIdx])
			c2 := s.grid.ToCell(p.Coords[coordIdx+1])
			next := s.grid.ToCell(p.Coords[coordIdx+2])
			s.flattenCubic(current, c1, c2, next, s.addEdge)
			current = next
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				s.addEdge(current, subpath)
			}
			current = subpath
		}
	}
	if current != subpath {
		s.addEdge(current, subpath)
	}
}

// flattenQuadratic flattens a quadratic Bézier curve in cell space.
func (s *Scanner) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if dev := e.Length(); dev > s.flatness {
		n = int(math.Ceil(math.Sqrt(dev / s.flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier curve in cell space, using Wang's
// formula for the number of segments.
func (s *Scanner) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * s.flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// Coverage accumulation model:
//
// For each cell of a row, we track two values:
//   cover: signed vertical extent of edges crossing this column
//   area:  the same, weighted by how far right of the crossing the cell extends
//
// An edge piece with sign s and vertical extent dy inside a column
// contributes
//   cover = s * dy
//   area  = cover * (1 - xFrac)
// where xFrac is the horizontal position of the piece's midpoint within the
// column. Integrating the row from the left,
//   coverage[i] = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
// gives the exact area to the right of the edge inside each cell.
//
// The sign of an edge is not its direction. The row is cut into strips at
// all edge end points and edge crossings, so that inside a strip the edges
// have a fixed left-to-right order. Walking this order with the fill rule
// tells whether the filled region starts (s = +1) or ends (s = -1) at an
// edge, or whether the edge does not change the fill state (s = 0). This
// makes the result exact for even-odd fills and overlapping nonzero fills,
// where the plain signed area would over- or under-count.

// fillEdges computes the coverage of the current edge list, row by row,
// using the given fill rule. Only cells inside the grid are reported. The
// coverage slice passed to emit is valid only during the call.
func (s *Scanner) fillEdges(rule fillRule, emit func(row, colMin int, coverage []float64)) {
	if len(s.edges) == 0 {
		return
	}

	xMin := max(HalfOpenLow.index(s.bx0), 0)
	xMax := min(HalfOpenLow.index(s.bx1)+1, s.grid.cols)
	yMin := max(HalfOpenLow.index(s.by0), 0)
	yMax := min(HalfOpenLow.index(s.by1)+1, s.grid.rows)
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	s.cover = slices.Grow(s.cover[:0], width)[:width]
	s.area = slices.Grow(s.area[:0], width)[:width]

	slices.SortFunc(s.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	s.active = s.active[:0]
	nextEdge := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(s.edges) && s.edges[nextEdge].yMin() < yfNext {
			s.active = append(s.active, nextEdge)
			nextEdge++
		}
		s.active = slices.DeleteFunc(s.active, func(i int) bool {
			return s.edges[i].yMax() <= yf
		})
		if len(s.active) == 0 {
			continue
		}

		clear(s.cover)
		clear(s.area)
		s.scanRow(yf, yfNext, rule, xMin, xMax)
		integrateRow(s.cover, s.area)

		if trimmed, offset := trimZeros(s.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// scanRow accumulates all active edges into the row [y0, y1).
func (s *Scanner) scanRow(y0, y1 float64, rule fillRule, xMin, xMax int) {
	s.cuts = append(s.cuts[:0], y0, y1)
	for _, i := range s.active {
		e := &s.edges[i]
		if v := e.yMin(); v > y0 && v < y1 {
			s.cuts = append(s.cuts, v)
		}
		if v := e.yMax(); v > y0 && v < y1 {
			s.cuts = append(s.cuts, v)
		}
	}
	for a := range s.active {
		for b := a + 1; b < len(s.active); b++ {
			if y, ok := crossing(&s.edges[s.active[a]], &s.edges[s.active[b]], y0, y1); ok {
				s.cuts = append(s.cuts, y)
			}
		}
	}
	slices.Sort(s.cuts)

	for k := 1; k < len(s.cuts); k++ {
		lo, hi := s.cuts[k-1], s.cuts[k]
		if hi > lo {
			s.scanStrip(lo, hi, rule, xMin, xMax)
		}
	}
}

// scanStrip accumulates the edges spanning the strip [lo, hi), where no two
// edges cross and no edge ends strictly inside.
func (s *Scanner) scanStrip(lo, hi float64, rule fillRule, xMin, xMax int) {
	mid := (lo + hi) / 2
	s.strip = s.strip[:0]
	for _, i := range s.active {
		e := &s.edges[i]
		if e.yMin() < mid && e.yMax() > mid {
			s.strip = append(s.strip, stripEdge{idx: i, x: e.xAt(mid)})
		}
	}
	slices.SortFunc(s.strip, func(a, b stripEdge) int {
		return cmp.Compare(a.x, b.x)
	})

	winding := 0
	for _, se := range s.strip {
		e := &s.edges[se.idx]
		was := rule.inside(winding)
		winding += e.dir
		now := rule.inside(winding)

		switch {
		case now && !was:
			s.accumulateEdge(e, lo, hi, 1, xMin, xMax)
		case was && !now:
			s.accumulateEdge(e, lo, hi, -1, xMin, xMax)
		}
	}
}

// crossing returns the y coordinate where edges a and b cross strictly
// inside the row [y0, y1).
func crossing(a, b *edge, y0, y1 float64) (float64, bool) {
	lo := max(y0, a.yMin(), b.yMin())
	hi := min(y1, a.yMax(), b.yMax())
	if hi <= lo {
		return 0, false
	}
	fLo := a.xAt(lo) - b.xAt(lo)
	fHi := a.xAt(hi) - b.xAt(hi)
	if (fLo < 0 && fHi > 0) || (fLo > 0 && fHi < 0) {
		y := lo + (hi-lo)*fLo/(fLo-fHi)
		if y > lo && y < hi {
			return y, true
		}
	}
	return 0, false
}

// accumulateEdge adds the part of edge e between yTop and yBot to the cover
// and area buffers. The buffers are indexed by (x - xMin). Edges spanning
// several columns are split at the column boundaries.
func (s *Scanner) accumulateEdge(e *edge, yTop, yBot, sign float64, xMin, xMax int) {
	xAtYTop := e.xAt(yTop)
	xAtYBot := e.xAt(yBot)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)

	colLeft := HalfOpenLow.index(xLeft)
	colRight := HalfOpenLow.index(xRight)

	// entirely to the left of the buffer: full cover for every cell
	if colRight < xMin {
		c := sign * (yBot - yTop)
		s.cover[0] += c
		s.area[0] += c
		return
	}
	if colLeft >= xMax {
		return
	}

	if colLeft == colRight {
		s.accumulatePiece(e, yTop, yBot, sign, colLeft, xMin, xMax)
		return
	}

	dydx := 1 / e.dxdy
	if colLeft < xMin {
		// the part left of the buffer gives full cover, in one piece
		yAtXMin := e.y0 + dydx*(float64(xMin)-e.x0)
		lo, hi := yTop, min(yAtXMin, yBot)
		if xAtYTop > xAtYBot {
			lo, hi = max(yAtXMin, yTop), yBot
		}
		if hi > lo {
			c := sign * (hi - lo)
			s.cover[0] += c
			s.area[0] += c
		}
		colLeft = xMin
	}
	colRight = min(colRight, xMax-1)
	for col := colLeft; col <= colRight; col++ {
		yAtLeft := e.y0 + dydx*(float64(col)-e.x0)
		yAtRight := e.y0 + dydx*(float64(col+1)-e.x0)

		segYMin := max(min(yAtLeft, yAtRight), yTop)
		segYMax := min(max(yAtLeft, yAtRight), yBot)
		if segYMax <= segYMin {
			continue
		}
		s.accumulatePiece(e, segYMin, segYMax, sign, col, xMin, xMax)
	}
}

// accumulatePiece handles the part of an edge between yTop and yBot, which
// lies within column col.
func (s *Scanner) accumulatePiece(e *edge, yTop, yBot, sign float64, col, xMin, xMax int) {
	c := sign * (yBot - yTop)
	if col < xMin {
		s.cover[0] += c
		s.area[0] += c
		return
	}
	if col >= xMax {
		return
	}

	xMid := e.xAt((yTop + yBot) / 2)
	xFrac := min(max(xMid-float64(col), 0), 1)

	idx := col - xMin
	s.cover[idx] += c
	s.area[idx] += c * (1 - xFrac)
}

// integrateRow converts accumulated cover and area values into coverage
// fractions. The cover slice is overwritten with the result.
func integrateRow(cover, area []float64) {
	var accum float64
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = min(max(raw, 0), 1)
	}
}

// trimZeros returns the part of coverage between the first and last
// significant value, together with its starting offset. It returns nil, 0
// if nothing is significant.
func trimZeros(coverage []float64) (trimmed []float64, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] <= weightEpsilon {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] <= weightEpsilon {
		hi--
	}
	return coverage[lo : hi+1], lo
}
