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
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RasterizeParallel is like [Rasterize], but splits the features into
// contiguous chunks which are rasterised concurrently by up to workers
// goroutines. If workers is not positive, GOMAXPROCS is used.
//
// Each chunk is accumulated separately and the partial results are merged
// in input order. When all sums involved are exactly representable, the
// result is identical to the one of [Rasterize].
func RasterizeParallel(spec *GridSpec, opts Options, features []Feature, workers int) (*Grid, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := min(workers, len(features))
	if chunks <= 1 {
		return Rasterize(spec, opts, features)
	}

	// check the configuration before starting any goroutines
	if _, err := New(spec, opts); err != nil {
		return nil, err
	}

	partial := make([]*Rasterizer, chunks)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range chunks {
		lo := i * len(features) / chunks
		hi := (i + 1) * len(features) / chunks
		g.Go(func() error {
			r, err := New(spec, opts)
			if err != nil {
				return err
			}
			r.next = lo
			if err := r.addAll(features[lo:hi]); err != nil {
				return err
			}
			partial[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := partial[0]
	for _, r := range partial[1:] {
		if err := total.Merge(r); err != nil {
			return nil, err
		}
	}
	return total.Finalize()
}
