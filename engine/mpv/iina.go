package mpv

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/options"
)

// IINA drives the macOS native IINA application through LaunchServices.
// IINA does not expose mpv's IPC socket, so most capabilities degrade to
// no-ops; playback control beyond start and stop is not available.
type IINA struct {
	mu     sync.Mutex
	bus    *event.Bus
	cmd    *exec.Cmd
	exited chan struct{}
	caps   map[string]engine.Capability

	cfg      options.Config
	playlist []options.Item
	index    int
	playing  bool
}

func NewIINA() *IINA {
	e := &IINA{
		bus:    event.NewBus(),
		exited: make(chan struct{}),
	}
	e.caps = e.capabilities()
	return e
}

func (m *IINA) Init(elementID string, cfg options.Config) {
	if runtime.GOOS != constant.Darwin {
		m.bus.Trigger(event.Error, event.Payload{"message": "IINA is only supported on macOS"})
		return
	}

	m.mu.Lock()
	m.cfg = cfg
	if items, ok := cfg["playlist"].([]options.Item); ok {
		m.playlist = items
	}
	m.index = 0
	item := m.currentItem()
	m.mu.Unlock()

	target := mediaTarget(item)
	if target == "" {
		m.bus.Trigger(event.Error, event.Payload{"message": "playlist item carries no playable source"})
		return
	}

	if err := m.launch(target, itemTitle(item)); err != nil {
		log.Errorf("iina launch: %v", err)
		m.bus.Trigger(event.Error, event.Payload{"message": err.Error()})
		return
	}

	m.bus.Trigger(event.Playlist, event.Payload{"playlist": m.playlist})
	m.bus.Trigger(event.Item, event.Payload{"index": 0, "item": item})
	m.bus.Trigger(event.Ready, event.Payload{})

	m.mu.Lock()
	m.playing = true
	m.mu.Unlock()
	m.bus.Trigger(event.Play, event.Payload{"oldstate": event.StateIdle})
}

// launch invokes IINA via LaunchServices. IINA accepts mpv-specific
// arguments after the '--args' separator.
func (m *IINA) launch(rawURL string, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	args := []string{
		"-a", "IINA",
		"--args", fmt.Sprintf("--force-media-title=%s", sanitizeTitle(title)),
		safeURL,
	}

	m.cmd = exec.Command("open", args...)
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	return nil
}

func (m *IINA) Events() *event.Bus {
	return m.bus
}

func (m *IINA) Capability(name string) (engine.Capability, bool) {
	c, ok := m.caps[name]
	return c, ok
}

func (m *IINA) Destroy() {
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	m.bus.Clear()
}

func (m *IINA) Wait() <-chan struct{} {
	return m.exited
}

func (m *IINA) currentItem() options.Item {
	if m.index < len(m.playlist) {
		return m.playlist[m.index]
	}
	return options.Item{}
}

// capabilities exposes the narrow slice of control LaunchServices allows.
func (m *IINA) capabilities() map[string]engine.Capability {
	return map[string]engine.Capability{
		"getProvider": func(...any) any { return "iina" },
		"getState": func(...any) any {
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.playing {
				return event.StateIdle
			}
			select {
			case <-m.exited:
				return event.StateIdle
			default:
				return event.StatePlaying
			}
		},
		"getConfig": func(...any) any {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.cfg
		},
		"getPlaylist": func(...any) any {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.playlist
		},
		"getPlaylistIndex": func(...any) any {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.index
		},
		"stop":    func(...any) any { m.Destroy(); return nil },
		"destroy": func(...any) any { m.Destroy(); return nil },
	}
}
