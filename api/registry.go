package api

import (
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Registry is the process-wide ordered collection of live players. Insertion
// order equals creation order; unique ids grow monotonically and are never
// reused within a process lifetime.
type Registry struct {
	mu      sync.Mutex
	next    int
	players []*Player
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register constructs a player bound to an element id, assigns it the next
// unique id and appends it to the collection.
func (r *Registry) Register(elementID string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	p := newPlayer(r.next, elementID, r)
	r.players = append(r.players, p)
	return p
}

// Unregister removes the player with the given unique id. A no-op when the id
// is already absent.
func (r *Registry) Unregister(uid int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = lo.Filter(r.players, func(p *Player, _ int) bool {
		return p.uid != uid
	})
}

// First returns the earliest registered player still live.
func (r *Registry) First() mo.Option[*Player] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) == 0 {
		return mo.None[*Player]()
	}
	return mo.Some(r.players[0])
}

// At returns the player at the given position in registration order.
func (r *Registry) At(index int) mo.Option[*Player] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.players) {
		return mo.None[*Player]()
	}
	return mo.Some(r.players[index])
}

// ByElementID returns the player bound to the given element id, always the
// exact registered instance, never a copy.
func (r *Registry) ByElementID(elementID string) mo.Option[*Player] {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if p.elementID == elementID {
			return mo.Some(p)
		}
	}
	return mo.None[*Player]()
}

// All returns a snapshot of the live players in registration order.
func (r *Registry) All() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

// Size returns the number of live players.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.players)
}
