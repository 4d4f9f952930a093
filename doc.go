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

// Package gridder rasterises points, polylines and polygons onto a regular
// grid and folds the values of overlapping geometries into one value per
// cell.
//
// A [GridSpec] describes the grid. A [Scanner] converts one geometry into
// the cells it touches, each with a coverage weight in (0, 1]: points hit a
// single cell, lines hit every cell they cross (optionally widened to a
// corridor), and polygons report the exact fraction of every cell they
// cover. An [Accumulator] combines the weighted contributions using a
// [Reduction] such as [Mean] or [Max]. The [Rasterizer] ties these
// together:
//
//	spec, err := gridder.NewGridSpec(0, 0, 0.5, 0.5, 200, 300)
//	...
//	opts := gridder.DefaultOptions()
//	opts.Reduction = gridder.Mean
//	r, err := gridder.New(spec, opts)
//	...
//	for _, f := range features {
//		err := r.AddFeature(f)
//		...
//	}
//	grid, err := r.Finalize()
//
// Cells which no geometry reaches hold the fill value, NaN by default.
// For large inputs, [RasterizeParallel] splits the work between several
// goroutines.
package gridder

//go:generate go run ./testcases/export
