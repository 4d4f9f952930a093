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
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Feature is one input record: a geometry, the value it carries, and an
// optional weight override.
type Feature struct {
	Geometry Geometry
	Value    float64

	// Weight, if non-zero, replaces the coverage weight of every cell the
	// geometry touches. It must lie in (0, 1].
	Weight float64
}

// Rasterizer rasterises a sequence of geometries onto a grid and folds
// their contributions into per-cell values.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	spec    *GridSpec
	scan    *Scanner
	acc     *Accumulator
	buf     []Contribution
	summary Summary

	next int // input position of the next geometry
}

// New returns a Rasterizer for the grid spec, configured by opts.
func New(spec *GridSpec, opts Options) (*Rasterizer, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: missing grid", ErrInvalidGrid)
	}
	scan, err := NewScanner(spec, opts)
	if err != nil {
		return nil, err
	}
	acc, err := NewAccumulator(spec, opts)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{spec: spec, scan: scan, acc: acc}, nil
}

// Add rasterises g and folds value into every cell it touches, weighted by
// the coverage of the cell.
//
// If g cannot be rasterised, a *[GeometryError] is returned and the
// geometry is counted as skipped; the Rasterizer remains usable. After
// [Rasterizer.Finalize], Add fails with [ErrInvalidState].
func (r *Rasterizer) Add(g Geometry, value float64) error {
	return r.add(g, value, 0)
}

// AddWeighted is like [Rasterizer.Add], but every touched cell receives
// the given weight instead of its coverage. The weight must lie in (0, 1].
func (r *Rasterizer) AddWeighted(g Geometry, value, weight float64) error {
	if r.acc.finalized {
		return fmt.Errorf("%w: Add after Finalize", ErrInvalidState)
	}
	if !(weight > 0 && weight <= 1) {
		idx := r.next
		r.next++
		return r.skip(idx, g, invalidGeometry("weight override %g not in (0, 1]", weight))
	}
	return r.add(g, value, weight)
}

// AddFeature adds f.Geometry with value f.Value, using f.Weight as a
// weight override if it is non-zero.
func (r *Rasterizer) AddFeature(f Feature) error {
	if f.Weight == 0 {
		return r.Add(f.Geometry, f.Value)
	}
	return r.AddWeighted(f.Geometry, f.Value, f.Weight)
}

func (r *Rasterizer) add(g Geometry, value, weight float64) error {
	if r.acc.finalized {
		return fmt.Errorf("%w: Add after Finalize", ErrInvalidState)
	}
	idx := r.next
	r.next++

	var st ScanStats
	var err error
	buf := r.buf[:0]
	switch g := g.(type) {
	case Point:
		buf, st, err = r.scan.ScanPoint(buf, g)
	case Polyline:
		buf, st, err = r.scan.ScanPolyline(buf, g)
	case Polygon:
		buf, st, err = r.scan.ScanPolygon(buf, g)
	default:
		err = invalidGeometry("unsupported geometry type %T", g)
	}
	r.buf = buf
	r.summary.DegenerateSegments += st.DegenerateSegments
	if err != nil {
		return r.skip(idx, g, err)
	}

	if len(buf) == 0 {
		if st.Outside {
			r.summary.OutOfBounds++
		} else {
			r.summary.Empty++
		}
		return nil
	}
	r.summary.Added++
	if st.Clipped {
		r.summary.Clipped++
	}

	for _, c := range buf {
		if weight > 0 {
			c.Weight = weight
		}
		if err := r.acc.Add(c, value); err != nil {
			return err
		}
	}
	return nil
}

// skip records a geometry which could not be rasterised.
func (r *Rasterizer) skip(idx int, g Geometry, err error) error {
	kind := fmt.Sprintf("%T", g)
	if g != nil {
		kind = g.kind()
	}
	r.summary.Skipped++
	Logger().WithFields(logrus.Fields{
		"index": idx,
		"kind":  kind,
	}).WithError(err).Warn("gridder: skipping geometry")
	return &GeometryError{Index: idx, Kind: kind, Err: err}
}

// Merge folds the state of other into r. Both Rasterizers must use grids
// of the same shape and the same reduction settings. other is not
// modified.
func (r *Rasterizer) Merge(other *Rasterizer) error {
	if err := r.acc.Merge(other.acc); err != nil {
		return err
	}
	r.summary.add(other.summary)
	return nil
}

// Summary returns the statistics of the geometries added so far.
func (r *Rasterizer) Summary() Summary {
	s := r.summary
	s.Discarded = r.acc.discarded
	return s
}

// Finalize returns the accumulated grid. After Finalize, the Rasterizer
// cannot be used any more.
func (r *Rasterizer) Finalize() (*Grid, error) {
	summary := r.Summary()
	g, err := r.acc.Finalize()
	if err != nil {
		return nil, err
	}
	g.summary = summary

	Logger().WithFields(logrus.Fields{
		"rows":      g.rows,
		"cols":      g.cols,
		"reduction": g.reduction.String(),
		"added":     summary.Added,
		"skipped":   summary.Skipped,
		"outside":   summary.OutOfBounds,
		"empty":     summary.Empty,
		"clipped":   summary.Clipped,
	}).Debug("gridder: finalized grid")
	return g, nil
}

// Rasterize rasterises all features onto a fresh grid. Features which
// cannot be rasterised are skipped and counted in the summary of the
// returned grid.
func Rasterize(spec *GridSpec, opts Options, features []Feature) (*Grid, error) {
	r, err := New(spec, opts)
	if err != nil {
		return nil, err
	}
	if err := r.addAll(features); err != nil {
		return nil, err
	}
	return r.Finalize()
}

// addAll adds all features, ignoring per-geometry errors.
func (r *Rasterizer) addAll(features []Feature) error {
	var geomErr *GeometryError
	for _, f := range features {
		if err := r.AddFeature(f); err != nil && !errors.As(err, &geomErr) {
			return err
		}
	}
	return nil
}
