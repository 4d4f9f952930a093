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

package testcases

import "seehuhn.de/go/geom/vec"

var precisionCases = []TestCase{
	// sub-cell positioning
	{
		Name:  "subcell_offset_00",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: offsetRectangle(20, 20, 24, 24, 0.0)},
		Area:  24 * 24,
	},
	{
		Name:  "subcell_offset_25",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: offsetRectangle(20, 20, 24, 24, 0.25)},
		Area:  24 * 24,
	},
	{
		Name:  "subcell_offset_50",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: offsetRectangle(20, 20, 24, 24, 0.5)},
		Area:  24 * 24,
	},
	{
		Name:  "subcell_offset_75",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: offsetRectangle(20, 20, 24, 24, 0.75)},
		Area:  24 * 24,
	},
	{
		Name:  "tiny_square",
		Rows:  8,
		Cols:  8,
		Shape: Area{Outer: offsetRectangle(3.25, 3.25, 0.125, 0.125, 0)},
		Area:  0.125 * 0.125,
	},
	{
		Name:  "straddling_square",
		Rows:  8,
		Cols:  8,
		Shape: Area{Outer: offsetRectangle(2.875, 4.875, 0.25, 0.25, 0)},
		Area:  0.25 * 0.25,
	},
	{
		Name:  "float64_precision",
		Rows:  64,
		Cols:  64,
		Shape: Area{Outer: float64PrecisionShape()},
	},
}

// offsetRectangle returns a square-cornered rectangle, with an offset
// applied to all coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) []vec.Vec2 {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// float64PrecisionShape returns a rectangle whose coordinates require
// full float64 precision to represent accurately.
func float64PrecisionShape() []vec.Vec2 {
	// These values differ only in the low bits of float64.
	base := 32.0
	delta1 := 0.123456789012345
	delta2 := 0.123456789012346

	return rectangle(base-10+delta1, base-10+delta1, base+10+delta2, base+10+delta2)
}
