package engine

import (
	"sync"

	"github.com/samber/lo"
)

// Provider describes a registered engine backend and how to construct it.
type Provider struct {
	Name string

	// Available reports whether the backend can run on this host (binary on
	// PATH, supported platform). Nil means always available.
	Available func() bool

	// New constructs a fresh, uninitialized engine instance.
	New func() Engine
}

func (p *Provider) String() string {
	return p.Name
}

// Ready reports provider availability, treating a nil check as available.
func (p *Provider) Ready() bool {
	return p.Available == nil || p.Available()
}

var (
	providersMu sync.Mutex
	providers   []*Provider
)

// Register adds an engine provider to the process-wide registry. Registering a
// name twice replaces the earlier entry.
func Register(p *Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()

	providers = lo.Filter(providers, func(existing *Provider, _ int) bool {
		return existing.Name != p.Name
	})
	providers = append(providers, p)
}

// Available returns all registered providers in registration order.
func Available() []*Provider {
	providersMu.Lock()
	defer providersMu.Unlock()

	out := make([]*Provider, len(providers))
	copy(out, providers)
	return out
}

// Get finds a provider by name.
func Get(name string) (*Provider, bool) {
	providersMu.Lock()
	defer providersMu.Unlock()

	for _, p := range providers {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Choose resolves the provider to wire into a new player: the named one when
// registered and available, otherwise the first ready provider, otherwise a
// scripted in-process engine so setup never fails outright.
func Choose(name string) Engine {
	if p, ok := Get(name); ok && p.Ready() {
		return p.New()
	}

	for _, p := range Available() {
		if p.Ready() {
			return p.New()
		}
	}

	return NewScripted()
}
