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

import "fmt"

// Accumulator folds weighted cell contributions into per-cell values.
// It starts in the accumulating state; [Accumulator.Finalize] moves it to
// the finalized state, after which it cannot be changed any more.
//
// An Accumulator is not safe for concurrent use. To accumulate in
// parallel, give each worker its own Accumulator and combine them with
// [Accumulator.Merge].
type Accumulator struct {
	rows, cols int
	reduction  Reduction
	threshold  float64
	fill       float64

	val     []float64 // count, sum, extremum, presence bit or coverage
	norm    []float64 // sum of weights, only for Mean
	touched []bool

	discarded int
	finalized bool
}

// NewAccumulator returns an empty accumulator for the grid g, using the
// reduction, presence threshold and fill value from opts.
func NewAccumulator(g *GridSpec, opts Options) (*Accumulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := g.rows * g.cols
	a := &Accumulator{
		rows:      g.rows,
		cols:      g.cols,
		reduction: opts.Reduction,
		threshold: opts.PresenceThreshold,
		fill:      opts.Fill,
		val:       make([]float64, n),
		touched:   make([]bool, n),
	}
	if a.reduction == Mean {
		a.norm = make([]float64, n)
	}
	return a, nil
}

// Add folds a single contribution into the accumulator. Contributions
// outside the grid, or with non-positive weight, are discarded and
// counted.
func (a *Accumulator) Add(c Contribution, value float64) error {
	if a.finalized {
		return fmt.Errorf("%w: Add after Finalize", ErrInvalidState)
	}
	if c.Row < 0 || c.Row >= a.rows || c.Col < 0 || c.Col >= a.cols || !(c.Weight > 0) {
		a.discarded++
		return nil
	}

	i := c.Row*a.cols + c.Col
	w := c.Weight
	switch a.reduction {
	case Count:
		a.val[i]++
	case WeightedCount:
		a.val[i] += w
	case Sum:
		a.val[i] += w * value
	case Mean:
		a.val[i] += w * value
		a.norm[i] += w
	case Max:
		if !a.touched[i] || value > a.val[i] {
			a.val[i] = value
		}
	case Min:
		if !a.touched[i] || value < a.val[i] {
			a.val[i] = value
		}
	case Presence:
		if w > a.threshold {
			a.val[i] = 1
		}
	case Coverage:
		a.val[i] = max(a.val[i], w)
	}
	a.touched[i] = true
	return nil
}

// Merge folds the state of b into a. Both accumulators must use the same
// grid shape, reduction and presence threshold, and neither may be
// finalized. The combination is associative and commutative; for sums,
// this holds up to floating point rounding. b is not modified.
func (a *Accumulator) Merge(b *Accumulator) error {
	switch {
	case a.finalized || b.finalized:
		return fmt.Errorf("%w: Merge after Finalize", ErrInvalidState)
	case a.rows != b.rows || a.cols != b.cols:
		return fmt.Errorf("%w: cannot merge %d×%d grid into %d×%d grid",
			ErrInvalidState, b.rows, b.cols, a.rows, a.cols)
	case a.reduction != b.reduction:
		return fmt.Errorf("%w: cannot merge %s into %s",
			ErrInvalidState, b.reduction, a.reduction)
	case a.threshold != b.threshold:
		return fmt.Errorf("%w: presence thresholds %g and %g differ",
			ErrInvalidState, a.threshold, b.threshold)
	}

	for i, bt := range b.touched {
		if !bt {
			continue
		}
		bv := b.val[i]
		switch a.reduction {
		case Count, WeightedCount, Sum:
			a.val[i] += bv
		case Mean:
			a.val[i] += bv
			a.norm[i] += b.norm[i]
		case Max:
			if !a.touched[i] || bv > a.val[i] {
				a.val[i] = bv
			}
		case Min:
			if !a.touched[i] || bv < a.val[i] {
				a.val[i] = bv
			}
		case Presence, Coverage:
			a.val[i] = max(a.val[i], bv)
		}
		a.touched[i] = true
	}
	a.discarded += b.discarded
	return nil
}

// Discarded returns the number of contributions which were discarded.
func (a *Accumulator) Discarded() int {
	return a.discarded
}

// Finalize computes the final cell values and returns them as a Grid.
// Cells which were never touched hold the fill value. Finalize can only be
// called once.
func (a *Accumulator) Finalize() (*Grid, error) {
	if a.finalized {
		return nil, fmt.Errorf("%w: Finalize called twice", ErrInvalidState)
	}
	a.finalized = true

	values := a.val
	for i, t := range a.touched {
		switch {
		case !t:
			values[i] = a.fill
		case a.reduction == Mean:
			values[i] /= a.norm[i]
		}
	}

	g := &Grid{
		rows:      a.rows,
		cols:      a.cols,
		values:    values,
		touched:   a.touched,
		reduction: a.reduction,
		fill:      a.fill,
		summary:   Summary{Discarded: a.discarded},
	}
	a.val, a.norm, a.touched = nil, nil, nil
	return g, nil
}
