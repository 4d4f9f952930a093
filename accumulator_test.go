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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccumulator(t *testing.T, rows, cols int, r Reduction, threshold float64) *Accumulator {
	t.Helper()
	spec, err := NewGridSpec(0, 0, 1, 1, rows, cols)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Reduction = r
	opts.PresenceThreshold = threshold
	a, err := NewAccumulator(spec, opts)
	require.NoError(t, err)
	return a
}

// TestReductions folds two half-cell contributions with values 10 and 20
// into the same cell.
func TestReductions(t *testing.T) {
	cases := []struct {
		r         Reduction
		threshold float64
		want      float64
	}{
		{Count, 0, 2},
		{WeightedCount, 0, 1},
		{Sum, 0, 15},
		{Mean, 0, 15},
		{Max, 0, 20},
		{Min, 0, 10},
		{Presence, 0.25, 1},
		{Presence, 0.5, 0},
		{Coverage, 0, 0.5},
	}
	for _, c := range cases {
		t.Run(c.r.String(), func(t *testing.T) {
			a := newTestAccumulator(t, 2, 2, c.r, c.threshold)
			require.NoError(t, a.Add(Contribution{Row: 1, Col: 0, Weight: 0.5}, 10))
			require.NoError(t, a.Add(Contribution{Row: 1, Col: 0, Weight: 0.5}, 20))

			g, err := a.Finalize()
			require.NoError(t, err)
			assert.Equal(t, c.want, g.At(1, 0))
			assert.True(t, g.Touched(1, 0))
			assert.False(t, g.Touched(0, 0))
			assert.True(t, math.IsNaN(g.At(0, 0)), "untouched cell holds %g", g.At(0, 0))
			assert.Equal(t, c.r, g.Reduction())
		})
	}
}

func TestMeanWeights(t *testing.T) {
	a := newTestAccumulator(t, 1, 1, Mean, 0)
	require.NoError(t, a.Add(Contribution{Weight: 0.75}, 4))
	require.NoError(t, a.Add(Contribution{Weight: 0.25}, 8))
	g, err := a.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 5.0, g.At(0, 0))
}

func TestExtremaNegative(t *testing.T) {
	for _, r := range []Reduction{Max, Min} {
		a := newTestAccumulator(t, 1, 1, r, 0)
		require.NoError(t, a.Add(Contribution{Weight: 0.1}, -3))
		require.NoError(t, a.Add(Contribution{Weight: 1}, -7))
		g, err := a.Finalize()
		require.NoError(t, err)
		if r == Max {
			assert.Equal(t, -3.0, g.At(0, 0))
		} else {
			assert.Equal(t, -7.0, g.At(0, 0))
		}
	}
}

func TestAccumulatorDiscard(t *testing.T) {
	a := newTestAccumulator(t, 2, 3, Count, 0)
	for _, c := range []Contribution{
		{Row: -1, Col: 0, Weight: 1},
		{Row: 0, Col: 3, Weight: 1},
		{Row: 2, Col: 0, Weight: 1},
		{Row: 0, Col: 0, Weight: 0},
		{Row: 0, Col: 0, Weight: -0.5},
		{Row: 0, Col: 0, Weight: math.NaN()},
	} {
		require.NoError(t, a.Add(c, 1))
	}
	assert.Equal(t, 6, a.Discarded())

	g, err := a.Finalize()
	require.NoError(t, err)
	for row := range 2 {
		for col := range 3 {
			assert.False(t, g.Touched(row, col))
		}
	}
	assert.Equal(t, 6, g.Summary().Discarded)
}

func TestAccumulatorState(t *testing.T) {
	a := newTestAccumulator(t, 2, 2, Sum, 0)
	b := newTestAccumulator(t, 2, 2, Sum, 0)
	require.NoError(t, a.Add(Contribution{Weight: 1}, 1))

	_, err := a.Finalize()
	require.NoError(t, err)

	assert.ErrorIs(t, a.Add(Contribution{Weight: 1}, 1), ErrInvalidState)
	_, err = a.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, a.Merge(b), ErrInvalidState)
	assert.ErrorIs(t, b.Merge(a), ErrInvalidState)
}

func TestAccumulatorMergeMismatch(t *testing.T) {
	a := newTestAccumulator(t, 2, 2, Sum, 0)
	assert.ErrorIs(t, a.Merge(newTestAccumulator(t, 2, 3, Sum, 0)), ErrInvalidState)
	assert.ErrorIs(t, a.Merge(newTestAccumulator(t, 2, 2, Mean, 0)), ErrInvalidState)
	assert.ErrorIs(t, a.Merge(newTestAccumulator(t, 2, 2, Sum, 0.5)), ErrInvalidState)
	assert.NoError(t, a.Merge(newTestAccumulator(t, 2, 2, Sum, 0)))
}

// TestAccumulatorMerge checks that splitting the contributions between two
// accumulators and merging them gives the same result as accumulating all
// of them in one place.
func TestAccumulatorMerge(t *testing.T) {
	type input struct {
		c Contribution
		v float64
	}
	inputs := []input{
		{Contribution{Row: 0, Col: 0, Weight: 1}, 3},
		{Contribution{Row: 0, Col: 0, Weight: 0.5}, -2},
		{Contribution{Row: 0, Col: 1, Weight: 0.25}, 8},
		{Contribution{Row: 1, Col: 1, Weight: 0.75}, 4},
		{Contribution{Row: 0, Col: 1, Weight: 0.125}, 16},
		{Contribution{Row: 1, Col: 1, Weight: 1}, -1},
		{Contribution{Row: 5, Col: 1, Weight: 1}, 1},
	}

	for r := Count; r <= Coverage; r++ {
		t.Run(r.String(), func(t *testing.T) {
			all := newTestAccumulator(t, 2, 2, r, 0.5)
			for _, in := range inputs {
				require.NoError(t, all.Add(in.c, in.v))
			}
			want, err := all.Finalize()
			require.NoError(t, err)

			for split := range len(inputs) + 1 {
				a := newTestAccumulator(t, 2, 2, r, 0.5)
				b := newTestAccumulator(t, 2, 2, r, 0.5)
				for i, in := range inputs {
					if i < split {
						require.NoError(t, b.Add(in.c, in.v))
					} else {
						require.NoError(t, a.Add(in.c, in.v))
					}
				}
				require.NoError(t, a.Merge(b))
				got, err := a.Finalize()
				require.NoError(t, err)

				assert.True(t, sameValues(want, got),
					"split %d: got %v, want %v", split, got.Values(), want.Values())
				assert.Equal(t, want.Summary().Discarded, got.Summary().Discarded)
			}
		})
	}
}

// sameValues reports whether a and b hold the same values, treating NaN
// values as equal.
func sameValues(a, b *Grid) bool {
	va, vb := a.Values(), b.Values()
	for i := range va {
		if va[i] != vb[i] && !(math.IsNaN(va[i]) && math.IsNaN(vb[i])) {
			return false
		}
	}
	return true
}

func TestGridAccessors(t *testing.T) {
	spec, err := NewGridSpec(0, 0, 1, 1, 2, 3)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Reduction = Sum
	opts.Fill = -1
	a, err := NewAccumulator(spec, opts)
	require.NoError(t, err)
	require.NoError(t, a.Add(Contribution{Row: 1, Col: 2, Weight: 1}, 7))

	g, err := a.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, -1.0, g.Fill())
	assert.Equal(t, []float64{-1, -1, -1, -1, -1, 7}, g.Values())

	d := g.Dense()
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 7.0, d.At(1, 2))

	// the returned slices are copies
	g.Values()[5] = 0
	assert.Equal(t, 7.0, g.At(1, 2))

	assert.Panics(t, func() { g.At(2, 0) })
	assert.Panics(t, func() { g.Touched(0, -1) })
}

func TestNewAccumulatorInvalid(t *testing.T) {
	spec, err := NewGridSpec(0, 0, 1, 1, 2, 2)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.PresenceThreshold = 2
	_, err = NewAccumulator(spec, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
