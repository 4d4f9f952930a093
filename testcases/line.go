package testcases

import "seehuhn.de/go/geom/vec"

var pointCases = []TestCase{
	{
		Name:  "inside",
		Rows:  4,
		Cols:  4,
		Shape: Point{At: pt(1.5, 2.5)},
		Cells: [][2]int{{2, 1}},
	},
	{
		Name:  "interior_corner",
		Rows:  4,
		Cols:  4,
		Shape: Point{At: pt(2, 2)},
		Cells: [][2]int{{2, 2}},
	},
	{
		Name:  "outer_boundary",
		Rows:  4,
		Cols:  4,
		Shape: Point{At: pt(0, 2.5)},
		Cells: [][2]int{},
	},
	{
		Name:  "far_outside",
		Rows:  4,
		Cols:  4,
		Shape: Point{At: pt(-1e6, 7)},
		Cells: [][2]int{},
	},
}

// lineCases contains zero-width lines. The expected cells assume the
// half-open-low boundary convention.
var lineCases = []TestCase{
	{
		Name:  "horizontal",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0.5, 1.5), pt(3.5, 1.5)}},
		Cells: [][2]int{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	{
		Name:  "horizontal_reversed",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(3.5, 1.5), pt(0.5, 1.5)}},
		Cells: [][2]int{{1, 3}, {1, 2}, {1, 1}, {1, 0}},
	},
	{
		Name:  "vertical",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(2.5, 0.2), pt(2.5, 3.8)}},
		Cells: [][2]int{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
	},
	{
		Name:  "diagonal_corners",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0, 0), pt(4, 4)}},
		Cells: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
	},
	{
		Name:  "antidiagonal_corners",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(4, 0), pt(0, 4)}},
		Cells: [][2]int{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
	},
	{
		Name:  "diagonal_offset",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0.5, 0), pt(3.5, 3)}},
		Cells: [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}, {2, 3}},
	},
	{
		Name:  "on_grid_line",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0, 2), pt(4, 2)}},
		Cells: [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
	},
	{
		Name:  "through_grid",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(-2, 1.5), pt(6, 1.5)}},
		Cells: [][2]int{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	{
		Name:  "corner",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0.5, 0.5), pt(2.5, 0.5), pt(2.5, 2.5)}},
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	{
		Name:  "repeated_vertex",
		Rows:  4,
		Cols:  4,
		Shape: Line{Pts: []vec.Vec2{pt(0.5, 0.5), pt(1.5, 0.5), pt(1.5, 0.5), pt(3.5, 0.5)}},
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	},
	{
		Name:  "shallow",
		Rows:  16,
		Cols:  64,
		Shape: Line{Pts: []vec.Vec2{pt(0.3, 0.7), pt(63.9, 15.2)}},
	},
	{
		Name:  "steep",
		Rows:  64,
		Cols:  16,
		Shape: Line{Pts: []vec.Vec2{pt(1.1, 0.1), pt(14.7, 63.3)}},
	},
	{
		Name:  "zigzag",
		Rows:  32,
		Cols:  32,
		Shape: Line{Pts: zigzag(1.5, 1.25, 30.5, 12, 9.75)},
	},
	{
		Name:  "partly_outside",
		Rows:  32,
		Cols:  32,
		Shape: Line{Pts: []vec.Vec2{pt(-10.5, -3.25), pt(40.125, 37.5)}},
	},
}

// zigzag returns a polyline with n segments, alternating between the
// heights y0 and y0+dy.
func zigzag(x0, y0, x1 float64, n int, dy float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		y := y0
		if i%2 == 1 {
			y += dy
		}
		pts[i] = pt(x0+(x1-x0)*float64(i)/float64(n), y)
	}
	return pts
}
