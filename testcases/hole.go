package testcases

import "seehuhn.de/go/geom/vec"

// holeCases contains polygons with holes. Holes combine with the outer
// ring by even-odd parity, whatever the orientation of the rings.
var holeCases = []TestCase{
	{
		Name: "concentric",
		Rows: 512,
		Cols: 512,
		Shape: Area{
			Outer: rectangle(56, 56, 456, 456),
			Holes: [][]vec.Vec2{rectangle(156, 156, 356, 356)},
		},
		Area: 400*400 - 200*200,
	},
	{
		Name: "concentric_same_orientation",
		Rows: 64,
		Cols: 64,
		Shape: Area{
			Outer: rectangle(4.5, 4.5, 60.5, 60.5),
			Holes: [][]vec.Vec2{rectangle(20.25, 20.25, 40.25, 40.25)},
		},
		Area: 56*56 - 20*20,
	},
	{
		Name: "ring",
		Rows: 64,
		Cols: 64,
		Shape: Area{
			Outer: regularPolygon(32, 32, 28.8, 128),
			Holes: [][]vec.Vec2{reversed(regularPolygon(32, 32, 19.2, 128))},
		},
		Area: regularPolygonArea(28.8, 128) - regularPolygonArea(19.2, 128),
	},
	{
		Name: "two_holes",
		Rows: 32,
		Cols: 32,
		Shape: Area{
			Outer: rectangle(2, 2, 30, 30),
			Holes: [][]vec.Vec2{
				rectangle(4.5, 4.5, 12.5, 12.5),
				rectangle(16.25, 16.25, 28.25, 28.25),
			},
		},
		Area: 28*28 - 8*8 - 12*12,
	},
	{
		// an island inside the hole is filled again
		Name: "nested",
		Rows: 32,
		Cols: 32,
		Shape: Area{
			Outer: rectangle(0, 0, 32, 32),
			Holes: [][]vec.Vec2{
				rectangle(8, 8, 24, 24),
				rectangle(12, 12, 20, 20),
			},
		},
		Area: 32*32 - 16*16 + 8*8,
	},
	{
		Name: "grid",
		Rows: 64,
		Cols: 64,
		Shape: Area{
			Outer: rectangle(0, 0, 64, 64),
			Holes: rectangleGrid(4, 4, 64, 64, 2),
		},
		Area: 64*64 - 16*12*12,
	},
}

// rectangleGrid returns a grid of rectangles, separated by gaps.
func rectangleGrid(rows, cols int, width, height, gap float64) [][]vec.Vec2 {
	cellW := width / float64(cols)
	cellH := height / float64(rows)

	var rects [][]vec.Vec2
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap
			rects = append(rects, rectangle(x1, y1, x2, y2))
		}
	}
	return rects
}
