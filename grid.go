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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Grid is the finalized result of a rasterisation run. Values are stored
// in row-major order. A Grid is immutable and safe for concurrent use.
type Grid struct {
	rows, cols int
	values     []float64
	touched    []bool
	reduction  Reduction
	fill       float64
	summary    Summary
}

// Summary counts what happened to the geometries of a run.
type Summary struct {
	Added              int // geometries which contributed to at least one cell
	Skipped            int // geometries rejected as invalid
	OutOfBounds        int // valid geometries entirely outside the grid
	Empty              int // valid geometries inside the grid with negligible coverage
	Clipped            int // geometries partially outside the grid
	Discarded          int // cell contributions dropped by the accumulator
	DegenerateSegments int // zero-length line segments which were skipped
}

func (s *Summary) add(other Summary) {
	s.Added += other.Added
	s.Skipped += other.Skipped
	s.OutOfBounds += other.OutOfBounds
	s.Empty += other.Empty
	s.Clipped += other.Clipped
	s.Discarded += other.Discarded
	s.DegenerateSegments += other.DegenerateSegments
}

func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d skipped, %d out of bounds, %d clipped",
		s.Added, s.Skipped, s.OutOfBounds, s.Clipped)
}

// Rows returns the number of rows of the grid.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns of the grid.
func (g *Grid) Cols() int { return g.cols }

// At returns the value of cell (row, col).
// It panics if the cell is outside the grid.
func (g *Grid) At(row, col int) float64 {
	g.check(row, col)
	return g.values[row*g.cols+col]
}

// Touched reports whether any contribution reached cell (row, col).
// It panics if the cell is outside the grid.
func (g *Grid) Touched(row, col int) bool {
	g.check(row, col)
	return g.touched[row*g.cols+col]
}

func (g *Grid) check(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("gridder: cell (%d, %d) outside %d×%d grid", row, col, g.rows, g.cols))
	}
}

// Values returns a copy of all cell values, in row-major order.
func (g *Grid) Values() []float64 {
	return append([]float64(nil), g.values...)
}

// Dense returns a copy of the cell values as a matrix, where row r of the
// matrix is row r of the grid.
func (g *Grid) Dense() *mat.Dense {
	return mat.NewDense(g.rows, g.cols, g.Values())
}

// Reduction returns the reduction which produced the values.
func (g *Grid) Reduction() Reduction { return g.reduction }

// Fill returns the value stored in untouched cells.
func (g *Grid) Fill() float64 { return g.fill }

// Summary returns the statistics of the run which produced the grid.
func (g *Grid) Summary() Summary { return g.summary }
