package rrule

import "github.com/rs/zerolog"

// logger is the package-level diagnostic logger. It defaults to zerolog's
// disabled logger so the engine stays silent (and allocation-free on the
// logging path) unless a caller opts in, the same posture
// jpfluger/alibs-slim's alog package takes for its channel loggers.
var logger = zerolog.Nop()

// SetLogger installs l as the engine's diagnostic logger. Pass a disabled
// logger (zerolog.Nop()) to silence it again.
func SetLogger(l zerolog.Logger) {
	logger = l
}
