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

// Reduction selects how the contributions landing on one cell are folded
// into a single value.
type Reduction int

// These are the supported reductions.
const (
	// Count counts the contributions to each cell, ignoring weights.
	Count Reduction = iota

	// WeightedCount sums the weights of the contributions.
	WeightedCount

	// Sum sums weight*value over all contributions.
	Sum

	// Mean is the weighted mean of the values.
	Mean

	// Max is the largest value with positive weight.
	Max

	// Min is the smallest value with positive weight.
	Min

	// Presence is 1 if any contribution has a weight above the presence
	// threshold, and 0 if the cell was touched but never above it.
	Presence

	// Coverage is the largest weight seen.
	Coverage
)

var reductionNames = [...]string{
	Count:         "count",
	WeightedCount: "weighted-count",
	Sum:           "sum",
	Mean:          "mean",
	Max:           "max",
	Min:           "min",
	Presence:      "presence",
	Coverage:      "coverage",
}

func (r Reduction) valid() bool {
	return r >= 0 && int(r) < len(reductionNames)
}

func (r Reduction) String() string {
	if !r.valid() {
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
	return reductionNames[r]
}

// MarshalText implements [encoding.TextMarshaler].
func (r Reduction) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: unknown reduction %d", ErrInvalidOptions, int(r))
	}
	return []byte(reductionNames[r]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Both "weighted-count" and "weighted_count" are accepted.
func (r *Reduction) UnmarshalText(text []byte) error {
	name := string(text)
	if name == "weighted_count" {
		name = "weighted-count"
	}
	for i, n := range reductionNames {
		if n == name {
			*r = Reduction(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown reduction %q", ErrInvalidOptions, text)
}
