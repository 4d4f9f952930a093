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
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// loggerBox wraps the logger so that it can be stored in an atomic.Value
// regardless of the concrete type behind the interface.
type loggerBox struct {
	l logrus.FieldLogger
}

var currentLogger atomic.Value

func init() {
	currentLogger.Store(loggerBox{newSilentLogger()})
}

func newSilentLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger sets the logger used by the package. By default, nothing is
// logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [logrus.DebugLevel]: per-run summaries
//   - [logrus.WarnLevel]: skipped geometries and degenerate line segments
//
// SetLogger is safe for concurrent use.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newSilentLogger()
	}
	currentLogger.Store(loggerBox{l})
}

// Logger returns the logger currently used by the package.
func Logger() logrus.FieldLogger {
	return currentLogger.Load().(loggerBox).l
}
