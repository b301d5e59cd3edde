package mpv

import (
	"strings"
	"sync"

	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/options"
)

// Engine drives an external mpv process through JSON-IPC and translates its
// property-change stream into canonical bus events.
type Engine struct {
	mu   sync.Mutex
	bus  *event.Bus
	proc *process
	ev   *listener
	caps map[string]engine.Capability

	elementID string
	cfg       options.Config
	playlist  []options.Item
	index     int

	state    string
	position float64
	duration float64
}

// New returns an unwired mpv engine using the given binary (empty means "mpv"
// from PATH).
func New(binary string) *Engine {
	e := &Engine{
		bus:   event.NewBus(),
		proc:  newProcess(binary),
		state: event.StateIdle,
	}
	e.caps = e.capabilities()
	return e
}

// Init spawns the engine process against the first playlist item, attaches the
// property listener and announces readiness. Failures degrade to error events
// rather than panics; the facade stays queryable either way.
func (e *Engine) Init(elementID string, cfg options.Config) {
	e.mu.Lock()
	e.elementID = elementID
	e.cfg = cfg
	if items, ok := cfg["playlist"].([]options.Item); ok {
		e.playlist = items
	}
	e.index = 0
	item := e.currentItem()
	autostart, _ := cfg["autostart"].(bool)
	e.mu.Unlock()

	target := mediaTarget(item)
	if target == "" {
		e.bus.Trigger(event.Error, event.Payload{"message": "playlist item carries no playable source"})
		return
	}

	if err := e.proc.spawn(target, itemTitle(item)); err != nil {
		log.Errorf("mpv spawn: %v", err)
		e.bus.Trigger(event.Error, event.Payload{"message": err.Error()})
		return
	}

	e.applyConfig(cfg)

	e.ev = newListener(e.proc.ipc.socketPath, e.translate)
	if err := e.ev.start(); err != nil {
		log.Warnf("mpv listener: %v", err)
	}

	e.bus.Trigger(event.Playlist, event.Payload{"playlist": e.playlist})
	e.bus.Trigger(event.Item, event.Payload{"index": 0, "item": item})
	e.bus.Trigger(event.Ready, event.Payload{})

	if autostart {
		_ = e.proc.set("pause", false)
	}
}

// Events returns the engine's full event stream.
func (e *Engine) Events() *event.Bus {
	return e.bus
}

// Capability resolves a named operation.
func (e *Engine) Capability(name string) (engine.Capability, bool) {
	c, ok := e.caps[name]
	return c, ok
}

// Destroy stops the listener, quits the process and silences the bus.
func (e *Engine) Destroy() {
	if e.ev != nil {
		e.ev.stop()
	}
	e.proc.close()
	e.bus.Clear()
}

// Wait returns a channel closed when the engine process exits.
func (e *Engine) Wait() <-chan struct{} {
	return e.proc.wait()
}

// applyConfig pushes canonical options into mpv properties.
func (e *Engine) applyConfig(cfg options.Config) {
	if v, ok := cfg["volume"]; ok {
		if f, ok := engine.NumArg([]any{v}, 0); ok {
			_ = e.proc.set("volume", f)
		}
	}
	if m, ok := cfg["mute"].(bool); ok {
		_ = e.proc.set("mute", m)
	}
	if r, ok := cfg["defaultPlaybackRate"].(float64); ok && r > 0 {
		_ = e.proc.set("speed", r)
	}
	if rep, ok := cfg["repeat"].(bool); ok && rep {
		_ = e.proc.set("loop-playlist", "inf")
	}
}

// translate converts one mpv property change into its canonical bus event.
func (e *Engine) translate(property string, data interface{}) {
	switch property {
	case "time-pos":
		pos, ok := data.(float64)
		if !ok {
			return
		}
		e.mu.Lock()
		e.position = pos
		dur := e.duration
		e.mu.Unlock()
		e.bus.Trigger(event.Time, event.Payload{"position": pos, "duration": dur})

	case "duration":
		if dur, ok := data.(float64); ok {
			e.mu.Lock()
			e.duration = dur
			e.mu.Unlock()
		}

	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}
		e.setState(paused)

	case "seeking":
		if seeking, ok := data.(bool); ok {
			e.mu.Lock()
			pos := e.position
			e.mu.Unlock()
			if seeking {
				e.bus.Trigger(event.Seek, event.Payload{"position": pos})
			} else {
				e.bus.Trigger(event.Seeked, event.Payload{"position": pos})
			}
		}

	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			e.mu.Lock()
			e.state = event.StateComplete
			e.mu.Unlock()
			e.bus.Trigger(event.Complete, event.Payload{})
		}

	case "volume":
		if vol, ok := data.(float64); ok {
			e.bus.Trigger(event.VolumeSet, event.Payload{"volume": int(vol)})
		}

	case "mute":
		if mute, ok := data.(bool); ok {
			e.bus.Trigger(event.Mute, event.Payload{"mute": mute})
		}

	case "speed":
		if rate, ok := data.(float64); ok {
			e.bus.Trigger(event.RateChange, event.Payload{"playbackRate": rate})
		}

	case "fullscreen":
		if fs, ok := data.(bool); ok {
			e.bus.Trigger(event.Fullscreen, event.Payload{"fullscreen": fs})
		}

	case "core-idle":
		// A buffering heuristic: core idle while unpaused means stalled IO.
		if idle, ok := data.(bool); ok && idle {
			if paused, err := e.proc.getBool("pause"); err == nil && !paused {
				e.bus.Trigger(event.Buffer, event.Payload{"oldstate": e.currentState()})
			}
		}

	default:
		// Forward non-property events (e.g. playback-restart, end-file) as-is.
		payload := event.Payload{}
		if m, ok := data.(map[string]interface{}); ok {
			payload = event.Payload(m)
		}
		e.bus.Trigger(property, payload)
	}
}

func (e *Engine) setState(paused bool) {
	e.mu.Lock()
	old := e.state
	if paused {
		e.state = event.StatePaused
	} else {
		e.state = event.StatePlaying
	}
	changed := old != e.state
	state := e.state
	e.mu.Unlock()

	if !changed {
		return
	}
	if state == event.StatePaused {
		e.bus.Trigger(event.Pause, event.Payload{"oldstate": old})
	} else {
		e.bus.Trigger(event.Play, event.Payload{"oldstate": old})
	}
}

func (e *Engine) currentState() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) currentItem() options.Item {
	if e.index < len(e.playlist) {
		return e.playlist[e.index]
	}
	return options.Item{}
}

// loadIndex replaces the running media with the playlist item at index.
func (e *Engine) loadIndex(index int) {
	e.mu.Lock()
	if index < 0 || index >= len(e.playlist) {
		e.mu.Unlock()
		return
	}
	e.index = index
	item := e.playlist[index]
	e.mu.Unlock()

	target := mediaTarget(item)
	if target == "" {
		return
	}
	if _, err := e.proc.ipc.send([]interface{}{"loadfile", target, "replace"}); err != nil {
		log.Warnf("loadfile: %v", err)
		return
	}
	_ = e.proc.set("pause", false)

	e.bus.Trigger(event.Item, event.Payload{"index": index, "item": item})
}

// capabilities builds the capability map over IPC commands.
func (e *Engine) capabilities() map[string]engine.Capability {
	return map[string]engine.Capability{
		"play":  func(...any) any { _ = e.proc.set("pause", false); return nil },
		"pause": func(...any) any { _ = e.proc.set("pause", true); return nil },
		"stop":  func(...any) any { _, _ = e.proc.ipc.send([]interface{}{"stop"}); return nil },
		"seek": func(args ...any) any {
			if pos, ok := engine.NumArg(args, 0); ok {
				_, _ = e.proc.ipc.send([]interface{}{"seek", pos, "absolute"})
			}
			return nil
		},

		"getState": func(...any) any {
			if !e.proc.running() {
				return event.StateIdle
			}
			if paused, err := e.proc.getBool("pause"); err == nil && paused {
				return event.StatePaused
			}
			return e.currentState()
		},
		"getPosition": func(...any) any {
			pos, err := e.proc.getFloat("time-pos")
			if err != nil {
				return 0.0
			}
			return pos
		},
		"getDuration": func(...any) any {
			dur, err := e.proc.getFloat("duration")
			if err != nil {
				return 0.0
			}
			return dur
		},
		"getBuffer": func(...any) any {
			cached, err := e.proc.getFloat("demuxer-cache-duration")
			if err != nil {
				return 0.0
			}
			return cached
		},
		"getProvider": func(...any) any { return "mpv" },
		"getConfig": func(...any) any {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.cfg
		},

		"getVolume": func(...any) any {
			vol, err := e.proc.getFloat("volume")
			if err != nil {
				return 0
			}
			return int(vol)
		},
		"setVolume": func(args ...any) any {
			if vol, ok := engine.NumArg(args, 0); ok {
				_ = e.proc.set("volume", vol)
			}
			return nil
		},
		"getMute": func(...any) any {
			mute, _ := e.proc.getBool("mute")
			return mute
		},
		"setMute": func(args ...any) any {
			if len(args) > 0 {
				_ = e.proc.set("mute", engine.Arg[bool](args, 0))
			} else {
				_, _ = e.proc.ipc.send([]interface{}{"cycle", "mute"})
			}
			return nil
		},

		"getPlaybackRate": func(...any) any {
			rate, err := e.proc.getFloat("speed")
			if err != nil {
				return 1.0
			}
			return rate
		},
		"setPlaybackRate": func(args ...any) any {
			if rate, ok := engine.NumArg(args, 0); ok && rate > 0 {
				_ = e.proc.set("speed", rate)
			}
			return nil
		},

		"getPlaylist": func(...any) any {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.playlist
		},
		"getPlaylistIndex": func(...any) any {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.index
		},
		"playlistItem": func(args ...any) any {
			if n, ok := engine.NumArg(args, 0); ok {
				e.loadIndex(int(n))
			}
			return nil
		},
		"playlistNext": func(...any) any {
			e.mu.Lock()
			next := e.index + 1
			e.mu.Unlock()
			e.loadIndex(next)
			return nil
		},
		"playlistPrev": func(...any) any {
			e.mu.Lock()
			prev := e.index - 1
			e.mu.Unlock()
			e.loadIndex(prev)
			return nil
		},
		"load": func(args ...any) any {
			if items := engine.Arg[[]options.Item](args, 0); items != nil {
				e.mu.Lock()
				e.playlist = items
				e.mu.Unlock()
				e.bus.Trigger(event.Playlist, event.Payload{"playlist": items})
				e.loadIndex(0)
			}
			return nil
		},

		"getFullscreen": func(...any) any {
			fs, _ := e.proc.getBool("fullscreen")
			return fs
		},
		"setFullscreen": func(args ...any) any {
			if len(args) > 0 {
				_ = e.proc.set("fullscreen", engine.Arg[bool](args, 0))
			} else {
				_, _ = e.proc.ipc.send([]interface{}{"cycle", "fullscreen"})
			}
			return nil
		},

		"getCaptionsList": func(...any) any {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.currentItem().Tracks
		},
		"getCurrentCaptions": func(...any) any {
			sid, err := e.proc.getFloat("sid")
			if err != nil {
				return -1
			}
			return int(sid)
		},
		"setCurrentCaptions": func(args ...any) any {
			if n, ok := engine.NumArg(args, 0); ok {
				if n < 0 {
					_ = e.proc.set("sid", "no")
				} else {
					_ = e.proc.set("sid", n)
				}
			}
			return nil
		},

		"getCurrentAudioTrack": func(...any) any {
			aid, err := e.proc.getFloat("aid")
			if err != nil {
				return -1
			}
			return int(aid)
		},
		"setCurrentAudioTrack": func(args ...any) any {
			if n, ok := engine.NumArg(args, 0); ok {
				_ = e.proc.set("aid", n)
			}
			return nil
		},

		"destroy": func(...any) any { e.Destroy(); return nil },
	}
}

// mediaTarget picks the playable location of an item: its file, falling back
// to the first source.
func mediaTarget(item options.Item) string {
	if item.File != "" {
		return item.File
	}
	for _, src := range item.Sources {
		if src.File != "" {
			return src.File
		}
	}
	return ""
}

// itemTitle derives a window title for an item.
func itemTitle(item options.Item) string {
	if item.Title != "" {
		return item.Title
	}
	target := mediaTarget(item)
	if idx := strings.LastIndexAny(target, "/\\"); idx >= 0 {
		return target[idx+1:]
	}
	return target
}
