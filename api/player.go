// Package api implements the public player facade: instance lifecycle,
// process-wide registry and lookup, the event bridge between engine and
// subscribers, and the typed convenience surface layered over capability
// delegation.
package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/options"
	"github.com/playman-cli/playman/plugin"
	"github.com/playman-cli/playman/qoe"
	"github.com/playman-cli/playman/store"
	"github.com/spf13/viper"
)

// lifecycle is the facade state machine.
type lifecycle int

const (
	lifecycleUnconfigured lifecycle = iota
	lifecycleConfiguring
	lifecycleLive
	lifecycleRemoved
)

// Player is the public facade over one playback engine. All methods are safe
// to call in any lifecycle state; interacting with a removed or degraded
// player is a no-op rather than a failure.
type Player struct {
	uid       int
	elementID string
	registry  *Registry
	degraded  bool

	bus   *event.Bus
	timer *qoe.Timer

	// lifecycleMu serializes Setup and Remove against each other. Calling
	// either from inside an event handler fired during Setup deadlocks; the
	// caller is responsible for serializing lifecycle calls.
	lifecycleMu sync.Mutex

	mu          sync.Mutex
	state       lifecycle
	eng         engine.Engine
	bridge      *bridge
	config      options.Config
	plugins     map[string]plugin.Plugin
	pluginOrder []string
}

func newPlayer(uid int, elementID string, registry *Registry) *Player {
	return &Player{
		uid:       uid,
		elementID: elementID,
		registry:  registry,
		bus:       event.NewBus(),
		timer:     qoe.NewTimer(),
		plugins:   make(map[string]plugin.Plugin),
	}
}

// newDegradedPlayer builds the unresolvable-query fallback: a player exposing
// only plugin registration, with every other operation a no-op.
func newDegradedPlayer() *Player {
	p := newPlayer(0, "", nil)
	p.degraded = true
	return p
}

// ID returns the public identifier of the player, the element id captured at
// construction.
func (p *Player) ID() string {
	return p.elementID
}

// UniqueID returns the process-unique numeric identity of the player. Ids are
// never reused within a process lifetime.
func (p *Player) UniqueID() int {
	return p.uid
}

// QoE returns the player's quality-of-experience timer.
func (p *Player) QoE() *qoe.Timer {
	return p.timer
}

// Setup wires (or re-wires) the player to a fresh engine. A live player is
// fully torn down first: external listeners cleared, the previous bridge
// detached and the previous engine destroyed, strictly before any new wiring
// is attached. Setup does not await engine readiness; the ready event is
// delivered asynchronously once the engine completes its own work.
func (p *Player) Setup(raw options.Config) *Player {
	if p.degraded {
		return p
	}

	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	p.mu.Lock()
	if p.state == lifecycleRemoved {
		p.mu.Unlock()
		log.Warnf("setup on removed player %q ignored", p.elementID)
		return p
	}
	p.state = lifecycleConfiguring
	p.mu.Unlock()

	p.teardown()

	event.SetStrict(viper.GetBool(key.PlayerDebug))

	p.timer.Tick(qoe.TickSetup)

	cfg := options.Normalize(raw, store.All())
	eng := engine.Choose(providerName(cfg))

	br := newBridge(p)
	br.attach(eng.Events())

	p.mu.Lock()
	p.eng = eng
	p.bridge = br
	p.config = cfg
	p.mu.Unlock()

	p.applyHandlerOptions(cfg)
	p.attachPlugins(cfg)

	p.mu.Lock()
	p.state = lifecycleLive
	p.mu.Unlock()

	eng.Init(p.elementID, cfg)

	return p
}

// Remove unregisters the player, emits a terminal remove notification to the
// current listeners and tears all wiring down. Idempotent.
func (p *Player) Remove() *Player {
	if p.degraded {
		return p
	}

	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	p.mu.Lock()
	if p.state == lifecycleRemoved {
		p.mu.Unlock()
		return p
	}
	p.mu.Unlock()

	if p.registry != nil {
		p.registry.Unregister(p.uid)
	}

	p.Trigger(event.Remove, event.Payload{})
	p.teardown()

	p.mu.Lock()
	p.state = lifecycleRemoved
	p.mu.Unlock()

	return p
}

// teardown releases the current engine generation in strict order: external
// listeners first, then the bridge, then the engine itself.
func (p *Player) teardown() {
	p.mu.Lock()
	br := p.bridge
	eng := p.eng
	p.bridge = nil
	p.eng = nil
	p.mu.Unlock()

	p.bus.Clear()

	if br != nil {
		br.detach()
	}

	if d, ok := eng.(engine.Destroyer); ok {
		d.Destroy()
	}
}

// CallInternal delegates a named capability to the currently wired engine.
// A missing capability, or no engine at all, yields nil so the facade stays
// queryable before an engine finishes initializing.
func (p *Player) CallInternal(method string, args ...any) any {
	p.mu.Lock()
	eng := p.eng
	p.mu.Unlock()

	if eng == nil {
		return nil
	}

	capability, ok := eng.Capability(method)
	if !ok {
		return nil
	}

	return capability(args...)
}

// Trigger shallow-copies the payload, stamps it with the event name and emits
// it to the player's subscribers.
func (p *Player) Trigger(name string, data event.Payload) *Player {
	payload := make(event.Payload, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["type"] = name

	p.bus.Trigger(name, payload)
	return p
}

// On subscribes a handler to a player event.
func (p *Player) On(name string, fn event.Handler) *Player {
	p.bus.On(name, fn)
	return p
}

// Once subscribes a handler removed automatically after its first delivery.
func (p *Player) Once(name string, fn event.Handler) *Player {
	p.bus.Once(name, fn)
	return p
}

// Off detaches subscriptions: with an event name, every handler of that event;
// with no argument, every handler on the player.
func (p *Player) Off(name ...string) *Player {
	if len(name) == 0 {
		p.bus.Clear()
		return p
	}
	for _, n := range name {
		p.bus.OffAll(n)
	}
	return p
}

// OnEvent subscribes a handler and returns its subscription handle for precise
// removal. This is the non-chaining surface plugins build on.
func (p *Player) OnEvent(name string, fn event.Handler) int {
	return p.bus.On(name, fn)
}

// OffEvent detaches a single subscription by handle.
func (p *Player) OffEvent(name string, id int) {
	p.bus.Off(name, id)
}

// Play forces, or toggles, playback. A leading boolean argument forces play
// (true) or pause (false); otherwise the current state decides: playing or
// buffering toggles to pause, anything else requests play. A metadata mapping
// may be supplied; the reason tag defaults to "external".
func (p *Player) Play(args ...any) *Player {
	meta := playMeta(args)

	if state, ok := leadingBool(args); ok {
		if state {
			p.CallInternal("play", meta)
		} else {
			p.CallInternal("pause", meta)
		}
		return p
	}

	switch p.GetState() {
	case event.StatePlaying, event.StateBuffering:
		p.CallInternal("pause", meta)
	default:
		p.CallInternal("play", meta)
	}

	return p
}

// Pause is the play inverse: a leading boolean is negated into an equivalent
// Play call, anything else delegates to Play's toggle with the metadata only.
func (p *Player) Pause(args ...any) *Player {
	if state, ok := leadingBool(args); ok {
		rest := append([]any{!state}, args[1:]...)
		return p.Play(rest...)
	}
	return p.Play(args...)
}

// AddPlugin records a plugin instance under name, invokes it once the player
// fires ready, and forwards resize events when the plugin reacts to them.
func (p *Player) AddPlugin(name string, instance plugin.Plugin) *Player {
	if instance == nil {
		return p
	}

	p.mu.Lock()
	if _, known := p.plugins[name]; !known {
		p.pluginOrder = append(p.pluginOrder, name)
	}
	p.plugins[name] = instance
	p.mu.Unlock()

	p.subscribePlugin(instance)
	return p
}

// GetPlugin resolves a plugin instance attached to this player.
func (p *Player) GetPlugin(name string) (plugin.Plugin, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	instance, ok := p.plugins[name]
	return instance, ok
}

// RegisterPlugin records a plugin constructor in the process-wide registry,
// gated by the plugin's minimum version requirement.
func (p *Player) RegisterPlugin(name string, minVersion string, ctor plugin.Constructor) error {
	return plugin.Register(name, minVersion, ctor)
}

// pluginFacade narrows a player to the surface plugins receive. Trigger drops
// its chaining return so the plugin contract stays free of api types.
type pluginFacade struct{ *Player }

func (f pluginFacade) Trigger(name string, data event.Payload) {
	f.Player.Trigger(name, data)
}

var _ plugin.Api = pluginFacade{}

// subscribePlugin wires one plugin instance to the current engine generation.
func (p *Player) subscribePlugin(instance plugin.Plugin) {
	p.bus.On(event.Ready, func(string, event.Payload) {
		instance.AddToPlayer(pluginFacade{p})
	})

	if r, ok := instance.(plugin.Resizer); ok {
		p.bus.On(event.Resize, func(_ string, data event.Payload) {
			r.Resize(intValue(data["width"]), intValue(data["height"]))
		})
	}
}

// attachPlugins re-wires plugins surviving from a previous engine generation
// and instantiates the ones named in the config's plugins mapping.
func (p *Player) attachPlugins(cfg options.Config) {
	p.mu.Lock()
	order := make([]string, len(p.pluginOrder))
	copy(order, p.pluginOrder)
	known := make(map[string]plugin.Plugin, len(p.plugins))
	for name, instance := range p.plugins {
		known[name] = instance
	}
	p.mu.Unlock()

	for _, name := range order {
		p.subscribePlugin(known[name])
	}

	configured, ok := cfg["plugins"].(map[string]any)
	if !ok {
		return
	}

	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, attached := known[name]; attached {
			continue
		}

		ctor, registered := plugin.Get(name)
		if !registered {
			log.Warnf("plugin %q configured but not registered", name)
			continue
		}

		pluginCfg, _ := configured[name].(map[string]any)
		instance, err := ctor(pluginCfg)
		if err != nil {
			log.Warnf("plugin %q: %v", name, err)
			continue
		}

		p.AddPlugin(name, instance)
	}
}

// applyHandlerOptions subscribes the event handlers embedded in the config as
// on-prefixed options, e.g. onReady or onPlay.
func (p *Player) applyHandlerOptions(cfg options.Config) {
	for name, value := range cfg {
		if len(name) <= 2 || !strings.HasPrefix(name, "on") {
			continue
		}

		handler, ok := asHandler(value)
		if !ok {
			continue
		}

		eventName := strings.ToLower(name[2:3]) + name[3:]
		p.On(eventName, handler)
	}
}

func asHandler(value any) (event.Handler, bool) {
	switch fn := value.(type) {
	case event.Handler:
		return fn, true
	case func(string, event.Payload):
		return fn, true
	case func(event.Payload):
		return func(_ string, data event.Payload) { fn(data) }, true
	case func():
		return func(string, event.Payload) { fn() }, true
	default:
		return nil, false
	}
}

// providerName resolves the engine provider to construct for a setup.
func providerName(cfg options.Config) string {
	if name, ok := cfg["provider"].(string); ok && name != "" {
		return name
	}
	return viper.GetString(key.EngineDefault)
}

// playMeta extracts the metadata mapping from play/pause arguments, attaching
// the default reason when the caller supplies none. The caller's map is never
// written to.
func playMeta(args []any) event.Payload {
	var supplied map[string]any
	for _, arg := range args {
		switch m := arg.(type) {
		case event.Payload:
			supplied = m
		case map[string]any:
			supplied = m
		}
	}

	meta := make(event.Payload, len(supplied)+1)
	for k, v := range supplied {
		meta[k] = v
	}
	if _, ok := meta["reason"]; !ok {
		meta["reason"] = "external"
	}
	return meta
}

// leadingBool reports whether the first argument is an explicit boolean.
func leadingBool(args []any) (bool, bool) {
	if len(args) == 0 {
		return false, false
	}
	b, ok := args[0].(bool)
	return b, ok
}
