package api

import (
	"sync"

	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/qoe"
)

// bridge re-emits the engine's full event stream on the player facade. One
// bridge serves exactly one engine generation; Setup and Remove detach it
// before any successor attaches, so no event from a superseded engine reaches
// listeners registered after teardown.
type bridge struct {
	player *Player

	mu       sync.Mutex
	source   *event.Bus
	handle   int
	detached bool
}

func newBridge(p *Player) *bridge {
	return &bridge{player: p}
}

// attach subscribes the bridge to the engine bus wildcard topic.
func (b *bridge) attach(source *event.Bus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.source = source
	b.handle = source.On(event.All, b.forward)
}

// detach permanently silences the bridge. Safe to call more than once.
func (b *bridge) detach() {
	b.mu.Lock()
	source := b.source
	handle := b.handle
	b.detached = true
	b.source = nil
	b.mu.Unlock()

	if source != nil {
		source.Off(event.All, handle)
	}
}

// forward relays one engine event to the facade, stamping the ready event with
// the elapsed setup-to-ready QoE interval.
func (b *bridge) forward(name string, data event.Payload) {
	b.mu.Lock()
	dead := b.detached
	b.mu.Unlock()
	if dead {
		return
	}

	if name == event.Ready {
		b.player.timer.Tick(qoe.TickReady)

		if data == nil {
			data = event.Payload{}
		}
		data["setupTime"] = b.player.timer.Between(qoe.TickSetup, qoe.TickReady)
	}

	b.player.Trigger(name, data)
}
