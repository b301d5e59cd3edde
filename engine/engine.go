// Package engine defines the capability boundary between the player facade and
// the playback engines that do the actual media work.
//
// An engine exposes a set of named capabilities. Absence of a capability is not
// an error: the facade resolves missing names to a neutral no-result value, so
// facades can be queried before an engine finishes initializing.
package engine

import (
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/options"
)

// Capability is a single named operation an engine exposes to the facade.
type Capability func(args ...any) any

// Engine is the playback boundary. Init wires the engine to its mount point
// and hands it the canonical configuration; Events exposes the engine's full
// event stream; Capability resolves a named operation.
type Engine interface {
	Init(elementID string, cfg options.Config)
	Events() *event.Bus
	Capability(name string) (Capability, bool)
}

// Destroyer is implemented by engines that hold external resources needing an
// explicit release on teardown.
type Destroyer interface {
	Destroy()
}

// Arg returns the i-th argument of a capability call, or the zero value when
// absent or of the wrong type.
func Arg[T any](args []any, i int) T {
	var zero T
	if i >= len(args) {
		return zero
	}
	v, ok := args[i].(T)
	if !ok {
		return zero
	}
	return v
}

// NumArg returns the i-th argument coerced to float64, accepting any numeric type.
func NumArg(args []any, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch n := args[i].(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
