package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

var fillCases = []TestCase{
	{
		Name:  "triangle",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: []vec.Vec2{pt(10, 50), pt(32, 10), pt(54, 50)}},
		Area:  880,
	},
	{
		Name:  "thin_triangle",
		Rows:  1,
		Cols:  10,
		Shape: Area{Outer: []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 1)}},
		Area:  5,
	},
	{
		Name:  "rectangle",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: rectangle(10, 10, 44, 44)},
		Area:  34 * 34,
	},
	{
		Name:  "rectangle_reversed",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: reversed(rectangle(10.5, 10.25, 44.5, 44.75))},
		Area:  34 * 34.5,
	},
	{
		Name:  "star",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: fivePointStar(32, 32, 25)},
	},
	{
		Name:  "circle",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: regularPolygon(32.3, 31.7, 20, 256)},
		Area:  regularPolygonArea(20, 256),
	},
	{
		Name:  "diamond",
		Rows:  512,
		Cols:  512,
		Shape: Area{Outer: []vec.Vec2{pt(256, 76), pt(436, 256), pt(256, 436), pt(76, 256)}},
		Area:  2 * 180 * 180,
	},
	{
		Name:  "clipped",
		Rows:  512,
		Cols:  512,
		Shape: Area{Outer: rectangle(-100, 100, 612, 400)},
		Area:  512 * 300,
	},
	{
		Name:  "outside",
		Rows:  16,
		Cols:  16,
		Shape: Area{Outer: rectangle(20, 20, 30, 30)},
	},
}

// rectangle returns the corners of an axis-parallel rectangle.
func rectangle(x1, y1, x2, y2 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2)}
}

// reversed returns the vertices of a ring in opposite order.
func reversed(ring []vec.Vec2) []vec.Vec2 {
	res := make([]vec.Vec2, len(ring))
	for i, p := range ring {
		res[len(ring)-1-i] = p
	}
	return res
}

// fivePointStar returns a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) []vec.Vec2 {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}

	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3
	order := []int{0, 2, 4, 1, 3}
	star := make([]vec.Vec2, len(order))
	for i, j := range order {
		star[i] = pts[j]
	}
	return star
}

// regularPolygon returns the vertices of a regular n-gon with
// circumradius r, in counter-clockwise order.
func regularPolygon(cx, cy, r float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = pt(cx+r*cos, cy+r*sin)
	}
	return pts
}

// regularPolygonArea returns the area of a regular n-gon with
// circumradius r.
func regularPolygonArea(r float64, n int) float64 {
	return float64(n) / 2 * r * r * math.Sin(2*math.Pi/float64(n))
}
