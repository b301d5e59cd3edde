// Package plugin provides the extension seam of the player: process-wide
// plugin registration gated by version compatibility, and a bridge for
// Lua-based plugin scripts.
package plugin

import (
	"fmt"
	"sync"

	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/version"
)

// Api is the slice of a player a plugin may touch. It deliberately excludes
// the chaining surface so plugins cannot tear a player down from inside an
// event handler.
type Api interface {
	// ID returns the unique identifier of the player the plugin is attached to.
	ID() string

	// OnEvent subscribes a handler to a player event and returns its
	// subscription handle.
	OnEvent(name string, fn event.Handler) int

	// OffEvent detaches a single subscription by handle.
	OffEvent(name string, id int)

	// CallInternal invokes a named engine capability, returning nil when the
	// capability is absent.
	CallInternal(name string, args ...any) any

	// Trigger emits an event on the player with the given payload.
	Trigger(name string, data event.Payload)
}

// Plugin is a player extension. AddToPlayer is invoked once the player the
// plugin is registered on fires its ready event.
type Plugin interface {
	AddToPlayer(api Api)
}

// Resizer is implemented by plugins that react to player surface resizes.
type Resizer interface {
	Resize(width, height int)
}

// Constructor builds a fresh plugin instance from its per-player configuration.
type Constructor func(cfg map[string]any) (Plugin, error)

type registration struct {
	name string
	ctor Constructor
}

var (
	registryMu sync.Mutex
	registry   []registration
)

// Register records a plugin constructor under name, provided the running
// application satisfies the plugin's minimum version requirement. Registering
// a name twice replaces the earlier constructor.
func Register(name string, minVersion string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("plugin name must not be empty")
	}
	if ctor == nil {
		return fmt.Errorf("plugin %s: constructor must not be nil", name)
	}

	if minVersion != "" {
		comp, err := version.Compare(minVersion, constant.Version)
		if err != nil {
			return fmt.Errorf("plugin %s: invalid minimum version %q: %w", name, minVersion, err)
		}
		if comp > 0 {
			return fmt.Errorf("plugin %s requires version %s, running %s", name, minVersion, constant.Version)
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	for i, reg := range registry {
		if reg.name == name {
			registry[i].ctor = ctor
			return nil
		}
	}
	registry = append(registry, registration{name: name, ctor: ctor})
	return nil
}

// Get resolves a registered plugin constructor by name.
func Get(name string) (Constructor, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	for _, reg := range registry {
		if reg.name == name {
			return reg.ctor, true
		}
	}
	return nil, false
}

// Registered returns the names of all registered plugins in registration order.
func Registered() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, len(registry))
	for i, reg := range registry {
		names[i] = reg.name
	}
	return names
}
