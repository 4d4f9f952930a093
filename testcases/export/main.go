// Command export writes the test geometries, together with the coverage
// grids computed for them, to JSON for inspection by external tools.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/gridder"
	"seehuhn.de/go/gridder/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				logrus.WithField("case", category+"_"+tc.Name).Fatal(err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		logrus.Fatal(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logrus.Fatal(err)
	}
	logrus.WithField("cases", len(out.TestCases)).Info("wrote testdata/testcases.json")
}

type jsonTestCase struct {
	Name       string        `json:"name"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	Kind       string        `json:"kind"`
	Rings      [][][]float64 `json:"rings"`
	LineWidth  float64       `json:"line_width,omitempty"`
	Fractional bool          `json:"fractional,omitempty"`
	LineCap    string        `json:"line_cap,omitempty"`
	LineJoin   string        `json:"line_join,omitempty"`
	Area       float64       `json:"area,omitempty"`
	Coverage   [][]float64   `json:"coverage"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	jtc := jsonTestCase{
		Name: category + "_" + tc.Name,
		Rows: tc.Rows,
		Cols: tc.Cols,
		Area: tc.Area,
	}

	opts := gridder.DefaultOptions()
	opts.Reduction = gridder.Coverage
	opts.Fill = 0 // JSON has no NaN

	var g gridder.Geometry
	switch s := tc.Shape.(type) {
	case testcases.Point:
		jtc.Kind = "point"
		jtc.Rings = [][][]float64{ringToJSON([]vec.Vec2{s.At})}
		g = gridder.Point(s.At)
	case testcases.Line:
		jtc.Kind = "line"
		jtc.Rings = [][][]float64{ringToJSON(s.Pts)}
		jtc.LineWidth = s.Width
		jtc.Fractional = s.Fractional
		jtc.LineCap = testcases.CapName(s.Cap)
		jtc.LineJoin = testcases.JoinName(s.Join)
		opts.LineWidth = s.Width
		opts.Fractional = s.Fractional
		opts.LineCap = jtc.LineCap
		opts.LineJoin = jtc.LineJoin
		g = gridder.Polyline{Points: s.Pts}
	case testcases.Area:
		jtc.Kind = "polygon"
		jtc.Rings = append(jtc.Rings, ringToJSON(s.Outer))
		for _, h := range s.Holes {
			jtc.Rings = append(jtc.Rings, ringToJSON(h))
		}
		g = gridder.Polygon{Outer: s.Outer, Holes: s.Holes}
	}

	spec, err := gridder.NewGridSpec(0, 0, 1, 1, tc.Rows, tc.Cols)
	if err != nil {
		return jtc, err
	}
	grid, err := gridder.Rasterize(spec, opts, []gridder.Feature{{Geometry: g, Value: 1}})
	if err != nil {
		return jtc, err
	}
	for row := range grid.Rows() {
		line := make([]float64, grid.Cols())
		for col := range line {
			line[col] = grid.At(row, col)
		}
		jtc.Coverage = append(jtc.Coverage, line)
	}
	return jtc, nil
}

func ringToJSON(pts []vec.Vec2) [][]float64 {
	res := make([][]float64, len(pts))
	for i, p := range pts {
		res[i] = []float64{p.X, p.Y}
	}
	return res
}
