// Package qoe records named timestamp ticks and computes the intervals between
// them, backing per-player quality-of-experience metrics such as setup-to-ready
// latency.
package qoe

import (
	"sync"
	"time"
)

// Well-known tick names recorded by the player facade.
const (
	TickSetup = "setup"
	TickReady = "ready"
)

// Timer accumulates named timestamp ticks for interval computation, plus
// start/end counters for method profiling. A player instance owns exactly one
// Timer for its whole lifetime; re-setup accumulates ticks under new phase
// names rather than replacing the timer.
type Timer struct {
	mu     sync.Mutex
	ticks  map[string]time.Time
	starts map[string]time.Time
	sums   map[string]*Counter
}

// Counter aggregates the profile of a repeatedly measured method.
type Counter struct {
	Calls int
	Sum   float64 // accumulated milliseconds
}

// NewTimer returns an empty timer.
func NewTimer() *Timer {
	return &Timer{
		ticks:  make(map[string]time.Time),
		starts: make(map[string]time.Time),
		sums:   make(map[string]*Counter),
	}
}

// Tick records the current time under the given name, overwriting any previous
// tick with the same name.
func (t *Timer) Tick(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ticks[name] = time.Now()
}

// Between returns the elapsed milliseconds between two recorded ticks, or -1
// when either tick is absent.
func (t *Timer) Between(left, right string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, okL := t.ticks[left]
	r, okR := t.ticks[right]
	if !okL || !okR {
		return -1
	}
	return float64(r.Sub(l)) / float64(time.Millisecond)
}

// Start opens a profiling window for the named method.
func (t *Timer) Start(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.starts[name] = time.Now()
}

// End closes the profiling window opened by Start and accumulates its duration.
// An End without a matching Start is ignored.
func (t *Timer) End(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	began, ok := t.starts[name]
	if !ok {
		return
	}
	delete(t.starts, name)

	counter, ok := t.sums[name]
	if !ok {
		counter = &Counter{}
		t.sums[name] = counter
	}
	counter.Calls++
	counter.Sum += float64(time.Since(began)) / float64(time.Millisecond)
}

// Dump returns a snapshot of all accumulated method counters.
func (t *Timer) Dump() map[string]Counter {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Counter, len(t.sums))
	for name, counter := range t.sums {
		out[name] = *counter
	}
	return out
}
