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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Geometry is one of [Point], [Polyline] or [Polygon].
// Coordinates are in the world coordinate system of the [GridSpec].
type Geometry interface {
	isGeometry()
	kind() string
}

// Point is a single location.
type Point vec.Vec2

func (Point) isGeometry()  {}
func (Point) kind() string { return "point" }

// Polyline is an open path through at least two vertices.
type Polyline struct {
	Points []vec.Vec2
}

func (Polyline) isGeometry()  {}
func (Polyline) kind() string { return "polyline" }

// Polygon is an area bounded by an outer ring, minus any holes.
// Rings are closed implicitly; repeating the first vertex at the end is
// allowed but not required. Ring orientation does not matter: the interior
// is determined by the even-odd rule over all rings.
type Polygon struct {
	Outer []vec.Vec2
	Holes [][]vec.Vec2
}

func (Polygon) isGeometry()  {}
func (Polygon) kind() string { return "polygon" }

// Rings returns the outer ring followed by the holes.
func (p Polygon) Rings() [][]vec.Vec2 {
	rings := make([][]vec.Vec2, 0, 1+len(p.Holes))
	rings = append(rings, p.Outer)
	return append(rings, p.Holes...)
}

// Path returns the polygon as path data, one closed subpath per ring.
func (p Polygon) Path() *path.Data {
	d := &path.Data{}
	for _, ring := range p.Rings() {
		if len(ring) == 0 {
			continue
		}
		d = d.MoveTo(ring[0])
		for _, pt := range ring[1:] {
			d = d.LineTo(pt)
		}
		d = d.Close()
	}
	return d
}

// Area returns the area of the polygon, assuming that the holes are
// disjoint and lie inside the outer ring.
func (p Polygon) Area() float64 {
	a := math.Abs(ringArea(p.Outer))
	for _, h := range p.Holes {
		a -= math.Abs(ringArea(h))
	}
	return a
}

// ringArea returns the signed area of a closed ring (shoelace formula).
func ringArea(ring []vec.Vec2) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	prev := ring[n-1]
	for _, p := range ring {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return sum / 2
}

// Contribution is the weight with which a geometry covers one grid cell.
// Row and Col may lie outside the grid.
type Contribution struct {
	Row, Col int
	Weight   float64 // in (0, 1]
}

// checkPoints returns an error if any coordinate is NaN or infinite.
func checkPoints(pts []vec.Vec2) error {
	for i, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return invalidGeometry("vertex %d (%g, %g) is not finite", i, p.X, p.Y)
		}
	}
	return nil
}

// distinctVertices counts the vertices of a closed ring, ignoring
// consecutive repeats and a repeated closing vertex.
func distinctVertices(ring []vec.Vec2) int {
	if len(ring) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(ring); i++ {
		if ring[i] != ring[i-1] {
			n++
		}
	}
	if n > 1 && ring[len(ring)-1] == ring[0] {
		n--
	}
	return n
}

func (p Polygon) validate() error {
	for i, ring := range p.Rings() {
		if err := checkPoints(ring); err != nil {
			return err
		}
		if distinctVertices(ring) < 3 {
			if i == 0 {
				return invalidGeometry("outer ring has fewer than 3 vertices")
			}
			return invalidGeometry("hole %d has fewer than 3 vertices", i-1)
		}
	}
	if ringArea(p.Outer) == 0 {
		return invalidGeometry("outer ring has zero area")
	}
	return nil
}

func (l Polyline) validate() error {
	if len(l.Points) < 2 {
		return invalidGeometry("polyline has %d vertices, need at least 2", len(l.Points))
	}
	return checkPoints(l.Points)
}
