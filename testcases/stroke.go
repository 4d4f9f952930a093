package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// corridorCases contains wide lines. For fractional lines with a known
// corridor area, Area gives this area.
var corridorCases = []TestCase{
	{
		Name: "line_butt",
		Rows: 8,
		Cols: 8,
		Shape: Line{
			Pts:        []vec.Vec2{pt(1, 4), pt(7, 4)},
			Width:      2,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
		},
		Area: 12,
	},
	{
		Name: "line_square",
		Rows: 8,
		Cols: 8,
		Shape: Line{
			Pts:        []vec.Vec2{pt(1, 4), pt(7, 4)},
			Width:      2,
			Fractional: true,
			Cap:        graphics.LineCapSquare,
			Join:       graphics.LineJoinMiter,
		},
		Area: 16,
	},
	{
		Name: "line_round",
		Rows: 8,
		Cols: 8,
		Shape: Line{
			Pts:        []vec.Vec2{pt(1, 4), pt(7, 4)},
			Width:      2,
			Fractional: true,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinMiter,
		},
		Area: 12 + math.Pi,
	},
	{
		Name: "diagonal_butt",
		Rows: 16,
		Cols: 16,
		Shape: Line{
			Pts:        []vec.Vec2{pt(3, 3), pt(11, 9)},
			Width:      1.5,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
		},
		Area: 10 * 1.5,
	},
	{
		Name: "corner_miter",
		Rows: 64,
		Cols: 64,
		Shape: Line{
			Pts:        []vec.Vec2{pt(10, 50), pt(32, 14), pt(54, 50)},
			Width:      6,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
		},
	},
	{
		Name: "corner_round",
		Rows: 64,
		Cols: 64,
		Shape: Line{
			Pts:        []vec.Vec2{pt(10, 50), pt(32, 14), pt(54, 50)},
			Width:      6,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinRound,
		},
	},
	{
		Name: "corner_bevel",
		Rows: 64,
		Cols: 64,
		Shape: Line{
			Pts:        []vec.Vec2{pt(10, 50), pt(32, 14), pt(54, 50)},
			Width:      6,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinBevel,
		},
	},
	{
		Name: "right_angle_miter",
		Rows: 16,
		Cols: 16,
		Shape: Line{
			Pts:        []vec.Vec2{pt(2, 4), pt(10, 4), pt(10, 12)},
			Width:      2,
			Fractional: true,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
		},
		Area: 8*2 + 8*2,
	},
	{
		Name: "wide_binary",
		Rows: 32,
		Cols: 32,
		Shape: Line{
			Pts:   []vec.Vec2{pt(3.2, 5.1), pt(27.9, 20.4), pt(8.3, 29.6)},
			Width: 3,
			Cap:   graphics.LineCapRound,
			Join:  graphics.LineJoinRound,
		},
	},
}
