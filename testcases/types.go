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

// Package testcases collects named geometries for testing rasterisation.
// All cases use a grid of unit cells with its origin at (0, 0), so that
// world coordinates and cell coordinates coincide.
package testcases

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestCase defines a single rasterisation test.
type TestCase struct {
	Name  string // lowercase a-z, 0-9 and _ only
	Rows  int    // number of grid rows
	Cols  int    // number of grid columns
	Shape Shape  // the geometry to rasterise

	// Area is the exact area inside the grid of an [Area] shape, or of
	// the corridor of a fractional [Line], or 0 if it is not known in
	// closed form.
	Area float64

	// Cells lists the expected cells of a zero-width [Line], in traversal
	// order, or is nil if not specified.
	Cells [][2]int
}

// Shape is the geometry of a test case.
type Shape interface {
	isShape()
}

// Point is a single location.
type Point struct {
	At vec.Vec2
}

func (Point) isShape() {}

// Line is a polyline, optionally widened to a corridor.
type Line struct {
	Pts        []vec.Vec2
	Width      float64                // corridor width in cells (0 for ideal lines)
	Fractional bool                   // report area fractions instead of 0/1
	Cap        graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join       graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel
}

func (Line) isShape() {}

// Area is a polygon with optional holes, filled with the even-odd rule.
type Area struct {
	Outer []vec.Vec2
	Holes [][]vec.Vec2
}

func (Area) isShape() {}

// CapName returns the name of a line cap style, as used in
// configuration files.
func CapName(c graphics.LineCapStyle) string {
	switch c {
	case graphics.LineCapRound:
		return "round"
	case graphics.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

// JoinName returns the name of a line join style, as used in
// configuration files.
func JoinName(j graphics.LineJoinStyle) string {
	switch j {
	case graphics.LineJoinRound:
		return "round"
	case graphics.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
