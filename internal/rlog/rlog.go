// This file is part of regvm.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rlog is a thin wrapper around zerolog providing the leveled
// logging calls the simulator needs: INFO for I/O port traffic, WARN
// for input-buffer exhaustion, and DEBUG for the per-instruction trace.
package rlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a leveled logger bound to a single output stream.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing human-readable console output to w.
func New(w io.Writer, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	z := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
	return &Logger{z: z}
}

// Default returns a Logger writing to stderr at INFO level, used when
// no explicit Logger Option is supplied to vm.New.
func Default() *Logger {
	return New(os.Stderr, false)
}

func (l *Logger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.z.Warn().Msg(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.z.Debug().Msgf(format, args...)
}

// IO logs one character of I/O port traffic at INFO level.
func (l *Logger) IO(direction string, ch int) {
	l.z.Info().Str("direction", direction).Int("codepoint", ch).Msg("port traffic")
}
