// Package obs wires the runtime's structured logging. It is a thin
// wrapper over zerolog, grounded on the level-gated, disabled-by-default
// logger shape used throughout the logiface-zerolog package: callers get
// a real zerolog.Logger back, but the default is silent so the hot path
// (context switches, park/unpark) pays nothing unless a caller opts in.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Disabled returns a logger that discards everything, suitable as a
// zero-value default for packages that accept an injectable logger.
func Disabled() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// New returns a console-formatted logger at the given level, writing to
// w. Pass an empty level string for the default (info).
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// Stderr is a convenience wrapper around New(os.Stderr, level).
func Stderr(level string) zerolog.Logger {
	return New(os.Stderr, level)
}
