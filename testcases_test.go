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
	"maps"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats"
	"seehuhn.de/go/gridder/testcases"
)

// caseGeometry converts the shape of a test case into a Geometry.
func caseGeometry(tc testcases.TestCase) Geometry {
	switch s := tc.Shape.(type) {
	case testcases.Point:
		return Point(s.At)
	case testcases.Line:
		return Polyline{Points: s.Pts}
	case testcases.Area:
		return Polygon{Outer: s.Outer, Holes: s.Holes}
	}
	panic("unknown shape")
}

// caseOptions returns the options needed to rasterise a test case.
func caseOptions(tc testcases.TestCase) Options {
	opts := DefaultOptions()
	opts.Reduction = Coverage
	if l, ok := tc.Shape.(testcases.Line); ok {
		opts.LineWidth = l.Width
		opts.Fractional = l.Fractional
		opts.LineCap = testcases.CapName(l.Cap)
		opts.LineJoin = testcases.JoinName(l.Join)
	}
	return opts
}

// scanCase runs a test case through a fresh Scanner on a unit grid.
func scanCase(t testing.TB, tc testcases.TestCase, opts Options) []Contribution {
	t.Helper()

	spec, err := NewGridSpec(0, 0, 1, 1, tc.Rows, tc.Cols)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewScanner(spec, opts)
	if err != nil {
		t.Fatal(err)
	}

	var res []Contribution
	switch g := caseGeometry(tc).(type) {
	case Point:
		res, _, err = s.ScanPoint(nil, g)
	case Polyline:
		res, _, err = s.ScanPolyline(nil, g)
	case Polygon:
		res, _, err = s.ScanPolygon(nil, g)
	}
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// forCases calls fn for all test cases of the given categories, as a
// subtest named after the case.
func forCases(t *testing.T, fn func(t *testing.T, tc testcases.TestCase), categories ...string) {
	if len(categories) == 0 {
		categories = slices.Sorted(maps.Keys(testcases.All))
	}
	for _, category := range categories {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				fn(t, tc)
			})
		}
	}
}

// totalWeight returns the sum of all weights, which for area coverage
// is the covered area in cells.
func totalWeight(cells []Contribution) float64 {
	w := make([]float64, len(cells))
	for i, c := range cells {
		w[i] = c.Weight
	}
	return floats.Sum(w)
}
