// Package event implements the synchronous in-process event bus shared by the
// player facade and the playback engines.
//
// The bus supports per-type subscription and a wildcard subscription receiving
// (type, payload) for every emission. Dispatch is synchronous and ordered:
// handlers run in subscription order, wildcard handlers after typed ones.
package event

import (
	"sync"

	"github.com/playman-cli/playman/log"
	"github.com/samber/lo"
)

// All is the wildcard topic. Handlers subscribed to it receive every emission.
const All = "*"

// Payload carries the event data. Emitters hand out shallow copies, so handlers
// may mutate their payload without affecting sibling handlers on other buses.
type Payload map[string]any

// Handler is the callback signature for bus subscriptions. The event type tag is
// always passed alongside the payload so a single handler can serve the wildcard topic.
type Handler func(event string, data Payload)

// subscriber binds a handler to its subscription identity.
type subscriber struct {
	id   int
	fn   Handler
	once bool
}

// Bus is a synchronous publish/subscribe dispatcher.
// The zero value is not usable; construct with NewBus.
type Bus struct {
	mu       sync.Mutex
	seq      int
	handlers map[string][]*subscriber
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]*subscriber)}
}

// On subscribes a handler to the given event type (or All) and returns its
// subscription identifier for later removal.
func (b *Bus) On(event string, fn Handler) int {
	return b.subscribe(event, fn, false)
}

// Once subscribes a handler that is removed automatically after its first delivery.
func (b *Bus) Once(event string, fn Handler) int {
	return b.subscribe(event, fn, true)
}

func (b *Bus) subscribe(event string, fn Handler, once bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.handlers[event] = append(b.handlers[event], &subscriber{id: b.seq, fn: fn, once: once})
	return b.seq
}

// Off removes the subscription with the given identifier from the event type.
// Unknown identifiers are ignored.
func (b *Bus) Off(event string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[event] = lo.Filter(b.handlers[event], func(s *subscriber, _ int) bool {
		return s.id != id
	})
}

// OffAll removes every subscription for the given event type.
func (b *Bus) OffAll(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, event)
}

// Clear removes every subscription on the bus.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[string][]*subscriber)
}

// Count returns the number of live subscriptions for the given event type.
func (b *Bus) Count(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.handlers[event])
}

// Trigger emits an event to all typed subscribers of the event type, then to all
// wildcard subscribers. Each handler receives its own shallow copy of the payload.
//
// Listener faults follow the process-wide mode: in safe mode a panicking handler
// is recovered and logged so one faulty listener cannot break the others; in
// strict mode (see SetStrict) the panic propagates to surface integration bugs.
func (b *Bus) Trigger(event string, data Payload) {
	b.mu.Lock()
	targets := append(b.snapshot(event), b.snapshot(All)...)
	b.mu.Unlock()

	for _, s := range targets {
		b.dispatch(event, s, data)
	}
}

// snapshot copies the subscriber list for an event and prunes once-handlers.
// Caller must hold b.mu.
func (b *Bus) snapshot(event string) []*subscriber {
	subs := b.handlers[event]
	if len(subs) == 0 {
		return nil
	}

	out := make([]*subscriber, len(subs))
	copy(out, subs)

	b.handlers[event] = lo.Filter(subs, func(s *subscriber, _ int) bool {
		return !s.once
	})
	return out
}

func (b *Bus) dispatch(event string, s *subscriber, data Payload) {
	if !Strict() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("listener for %q panicked: %v", event, r)
			}
		}()
	}

	s.fn(event, copyPayload(data))
}

func copyPayload(data Payload) Payload {
	out := make(Payload, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	return out
}
