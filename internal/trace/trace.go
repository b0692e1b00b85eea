// Package trace holds the process-wide debug logger shared by the lazy packages.
package trace

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	FieldOp       = "op"
	FieldType     = "type"
	FieldElements = "elements"
	FieldGroups   = "groups"
	FieldLevels   = "levels"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	current.Store(&nop)
}

// Set replaces the shared logger.
func Set(logger zerolog.Logger) {
	current.Store(&logger)
}

// Logger returns the shared logger. Callers must not retain it across Set.
func Logger() *zerolog.Logger {
	return current.Load()
}

// Debug starts a debug event tagged with the emitting component.
func Debug(component string) *zerolog.Event {
	return current.Load().Debug().Str("component", component)
}
