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
)

var (
	// ErrInvalidGrid indicates a malformed grid definition: a zero or
	// non-finite cell size, or a non-positive number of rows or columns.
	ErrInvalidGrid = errors.New("gridder: invalid grid")

	// ErrInvalidGeometry indicates a geometry which cannot be rasterised at
	// all, for example a polygon ring with fewer than three vertices.
	ErrInvalidGeometry = errors.New("gridder: invalid geometry")

	// ErrInvalidState indicates that an accumulator was used after it was
	// finalized, or that two incompatible accumulators were merged.
	ErrInvalidState = errors.New("gridder: invalid accumulator state")

	// ErrInvalidOptions indicates an option value outside its valid range.
	ErrInvalidOptions = errors.New("gridder: invalid options")
)

// GeometryError reports a geometry which was skipped by a [Rasterizer].
// Err always wraps [ErrInvalidGeometry].
type GeometryError struct {
	Index int    // position of the geometry in the input sequence
	Kind  string // "point", "polyline" or "polygon"
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s #%d: %v", e.Kind, e.Index, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

// invalidGeometry returns an error wrapping ErrInvalidGeometry.
func invalidGeometry(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidGeometry}, args...)...)
}
