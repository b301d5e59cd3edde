package api

import (
	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/plugin"
)

// DefaultElementID is the mount point players are created against when the
// caller names none.
const DefaultElementID = constant.Playman + "-player"

// Element is an explicit mount-point reference usable as a SelectPlayer query.
type Element struct {
	ID string
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide player registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// SelectPlayer resolves a caller query to a player, in priority order: no
// query returns the first registered player, degrading when none exists; a
// string matches an existing player's element id or creates a new player
// against that id; a number indexes registration order; an Element matches by
// its id or creates against it. Anything else yields a degraded player
// exposing only plugin registration.
func SelectPlayer(query any) *Player {
	switch q := query.(type) {
	case nil:
		if p, ok := defaultRegistry.First().Get(); ok {
			return p
		}
		return newDegradedPlayer()

	case string:
		if p, ok := defaultRegistry.ByElementID(q).Get(); ok {
			return p
		}
		return defaultRegistry.Register(q)

	case int:
		if p, ok := defaultRegistry.At(q).Get(); ok {
			return p
		}
		return newDegradedPlayer()

	case Element:
		return SelectPlayer(q.ID)

	case *Element:
		if q == nil {
			return SelectPlayer(nil)
		}
		return SelectPlayer(q.ID)

	default:
		return newDegradedPlayer()
	}
}

// RegisterProvider exposes engine provider registration at process scope.
func RegisterProvider(p *engine.Provider) {
	engine.Register(p)
}

// AvailableProviders returns the names of the engine providers ready on this host.
func AvailableProviders() []string {
	var names []string
	for _, p := range engine.Available() {
		if p.Ready() {
			names = append(names, p.Name)
		}
	}
	return names
}

// RegisterPlugin exposes plugin registration at process scope.
func RegisterPlugin(name string, minVersion string, ctor plugin.Constructor) error {
	return plugin.Register(name, minVersion, ctor)
}

// SetDebug switches the process-wide listener fault mode: strict when on, so
// listener panics propagate during development.
func SetDebug(on bool) {
	event.SetStrict(on)
}
