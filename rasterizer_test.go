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
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func square(x0, y0, size float64) Polygon {
	return Polygon{Outer: []vec.Vec2{
		{X: x0, Y: y0}, {X: x0 + size, Y: y0},
		{X: x0 + size, Y: y0 + size}, {X: x0, Y: y0 + size},
	}}
}

func unitGrid(t *testing.T, rows, cols int) *GridSpec {
	t.Helper()
	spec, err := NewGridSpec(0, 0, 1, 1, rows, cols)
	require.NoError(t, err)
	return spec
}

func TestRasterizeMean(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	opts := DefaultOptions()
	opts.Reduction = Mean

	// two polygons, each covering the left half of cell (1, 1)
	left := Polygon{Outer: []vec.Vec2{{X: 1, Y: 1}, {X: 1.5, Y: 1}, {X: 1.5, Y: 2}, {X: 1, Y: 2}}}
	g, err := Rasterize(spec, opts, []Feature{
		{Geometry: left, Value: 10},
		{Geometry: left, Value: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, g.At(1, 1))
	assert.True(t, math.IsNaN(g.At(0, 0)))
	assert.Equal(t, Summary{Added: 2}, g.Summary())
}

func TestRasterizerSummary(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	r, err := New(spec, DefaultOptions())
	require.NoError(t, err)

	// a point on the outer boundary is valid but outside
	require.NoError(t, r.Add(Point{X: 4, Y: 2}, 1))
	// a polygon entirely outside the grid
	require.NoError(t, r.Add(square(10, 10, 2), 1))
	// a polygon partly outside the grid
	require.NoError(t, r.Add(square(3, 3, 2), 1))
	// a line with a zero-length segment
	require.NoError(t, r.Add(Polyline{Points: []vec.Vec2{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 2.5, Y: 0.5}}}, 1))
	// an invalid polygon
	err = r.Add(Polygon{Outer: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}}, 1)
	require.Error(t, err)

	var geomErr *GeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, 4, geomErr.Index)
	assert.Equal(t, "polygon", geomErr.Kind)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	want := Summary{
		Added:              2,
		Skipped:            1,
		OutOfBounds:        2,
		Clipped:            1,
		DegenerateSegments: 1,
	}
	assert.Equal(t, want, r.Summary())

	g, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, want, g.Summary())
	assert.Equal(t, 1.0, g.At(3, 3))
	assert.Equal(t, 1.0, g.At(0, 1))
}

// TestRasterizerOutside checks that only geometries which miss the open
// grid extent count as out of bounds.
func TestRasterizerOutside(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	r, err := New(spec, DefaultOptions())
	require.NoError(t, err)

	// beyond the corner (4, 4), with a bounding box overlapping the grid
	require.NoError(t, r.Add(Polygon{Outer: []vec.Vec2{{X: 3.9, Y: 5}, {X: 5, Y: 3.9}, {X: 5, Y: 5}}}, 1))
	// on the outer boundary
	require.NoError(t, r.Add(Polyline{Points: []vec.Vec2{{X: 0, Y: 4}, {X: 4, Y: 4}}}, 1))
	// inside the grid, but too small to give any weight
	require.NoError(t, r.Add(Polygon{Outer: []vec.Vec2{{X: 1.5, Y: 1.5}, {X: 1.5 + 1e-7, Y: 1.5}, {X: 1.5, Y: 1.5 + 1e-7}}}, 1))
	// a vertex very far away
	require.NoError(t, r.Add(Polygon{Outer: []vec.Vec2{{X: -1e12, Y: 2}, {X: 2, Y: 0.5}, {X: 2, Y: 3.5}}}, 1))

	g, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, Summary{Added: 1, OutOfBounds: 2, Empty: 1, Clipped: 1}, g.Summary())
	assert.Equal(t, 1.0, g.At(2, 0))
	assert.False(t, g.Touched(2, 3))
}

// TestRasterizerEnclosingPolygon checks a polygon which contains the whole
// grid, in both polygon modes.
func TestRasterizerEnclosingPolygon(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	big := square(-2, -2, 8)

	g, err := Rasterize(spec, DefaultOptions(), []Feature{{Geometry: big, Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, Summary{Added: 1, Clipped: 1}, g.Summary())
	for _, v := range g.Values() {
		assert.Equal(t, 1.0, v)
	}

	opts := DefaultOptions()
	opts.PolygonMode = PolygonPerimeter
	g, err = Rasterize(spec, opts, []Feature{{Geometry: big, Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, Summary{OutOfBounds: 1}, g.Summary())
}

func TestRasterizerInvalidGeometry(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	features := []Feature{
		{Geometry: Point{X: 1.5, Y: 1.5}, Value: 1},
		{Geometry: Point{X: math.NaN(), Y: 1}, Value: 1},
		{Geometry: Polyline{Points: []vec.Vec2{{X: 1, Y: 1}}}, Value: 1},
		{Geometry: nil, Value: 1},
		{Geometry: Point{X: 2.5, Y: 1.5}, Value: 1},
	}
	g, err := Rasterize(spec, DefaultOptions(), features)
	require.NoError(t, err)
	assert.Equal(t, Summary{Added: 2, Skipped: 3}, g.Summary())
	assert.Equal(t, 1.0, g.At(1, 1))
	assert.Equal(t, 1.0, g.At(1, 2))
}

func TestRasterizerWeightOverride(t *testing.T) {
	spec := unitGrid(t, 2, 2)
	opts := DefaultOptions()
	opts.Reduction = WeightedCount
	r, err := New(spec, opts)
	require.NoError(t, err)

	small := square(0.25, 0.25, 0.5)
	require.NoError(t, r.Add(small, 1))
	require.NoError(t, r.AddWeighted(small, 1, 0.5))
	require.NoError(t, r.AddFeature(Feature{Geometry: small, Value: 1, Weight: 1}))

	for _, w := range []float64{0, -1, 1.5, math.NaN()} {
		err := r.AddWeighted(small, 1, w)
		assert.ErrorIs(t, err, ErrInvalidGeometry, "weight %g", w)
	}

	g, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 0.25+0.5+1, g.At(0, 0))
	assert.Equal(t, 3, g.Summary().Added)
	assert.Equal(t, 4, g.Summary().Skipped)
}

func TestRasterizerFinalized(t *testing.T) {
	r, err := New(unitGrid(t, 2, 2), DefaultOptions())
	require.NoError(t, err)
	_, err = r.Finalize()
	require.NoError(t, err)

	assert.ErrorIs(t, r.Add(Point{X: 1, Y: 1}, 1), ErrInvalidState)
	assert.ErrorIs(t, r.AddWeighted(Point{X: 1, Y: 1}, 1, 2), ErrInvalidState)
	_, err = r.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidGrid)

	opts := DefaultOptions()
	opts.LineCap = "pointy"
	_, err = New(unitGrid(t, 2, 2), opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

// TestRasterizeIdempotent checks that the same input always gives the
// same grid.
func TestRasterizeIdempotent(t *testing.T) {
	spec, err := NewGridSpec(-3, 7, 0.75, -0.5, 40, 30)
	require.NoError(t, err)
	features := mixedFeatures()

	for r := Count; r <= Coverage; r++ {
		opts := DefaultOptions()
		opts.Reduction = r
		opts.PresenceThreshold = 0.5

		g1, err := Rasterize(spec, opts, features)
		require.NoError(t, err)
		g2, err := Rasterize(spec, opts, features)
		require.NoError(t, err)

		if d := cmp.Diff(g1.Values(), g2.Values(), cmpopts.EquateNaNs()); d != "" {
			t.Errorf("%s: results differ (-first +second):\n%s", r, d)
		}
		assert.Equal(t, g1.Summary(), g2.Summary())
	}
}

// mixedFeatures returns features of all kinds, for a grid covering
// [-3, 19.5]×[-13, 7].
func mixedFeatures() []Feature {
	var res []Feature
	for i := range 20 {
		x := -3 + float64(i)*1.25
		y := 6 - float64(i)
		res = append(res,
			Feature{Geometry: Point{X: x + 0.3, Y: y - 0.2}, Value: float64(i)},
			Feature{Geometry: Polyline{Points: []vec.Vec2{{X: x, Y: y}, {X: x + 4, Y: y - 3}, {X: x + 1, Y: y - 5}}}, Value: float64(2 * i)},
			Feature{Geometry: square(x, y-3, 2.5), Value: float64(i % 5)},
		)
	}
	// an invalid and a distant geometry
	res = append(res,
		Feature{Geometry: Polygon{}, Value: 1},
		Feature{Geometry: square(100, 100, 1), Value: 1},
	)
	return res
}

func TestRasterizerMerge(t *testing.T) {
	spec := unitGrid(t, 4, 4)
	opts := DefaultOptions()
	opts.Reduction = Sum

	a, err := New(spec, opts)
	require.NoError(t, err)
	b, err := New(spec, opts)
	require.NoError(t, err)

	require.NoError(t, a.Add(square(0, 0, 2), 1))
	require.NoError(t, b.Add(square(1, 1, 2), 2))
	require.NoError(t, b.Add(square(10, 10, 1), 2))
	require.NoError(t, a.Merge(b))

	g, err := a.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, 3.0, g.At(1, 1))
	assert.Equal(t, 2.0, g.At(2, 2))
	assert.Equal(t, Summary{Added: 2, OutOfBounds: 1}, g.Summary())

	other, err := New(unitGrid(t, 4, 5), opts)
	require.NoError(t, err)
	c, err := New(spec, opts)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Merge(other), ErrInvalidState)
}

func TestRasterizerLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	defer SetLogger(nil)

	r, err := New(unitGrid(t, 2, 2), DefaultOptions())
	require.NoError(t, err)
	_ = r.Add(Polyline{}, 1)
	_, err = r.Finalize()
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, 0, entries[0].Data["index"])
	assert.Equal(t, "polyline", entries[0].Data["kind"])
	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
	assert.Equal(t, 1, entries[1].Data["skipped"])
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	SetLogger(l)
	defer SetLogger(nil)

	assert.Same(t, l, Logger())
	Logger().Warn("hello")
	assert.Contains(t, buf.String(), "hello")

	SetLogger(nil)
	assert.NotSame(t, l, Logger())
}
