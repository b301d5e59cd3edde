package engine

import (
	"sync"

	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/options"
)

// Scripted is an in-process engine with a deterministic state machine. It
// performs no real media work: state transitions happen synchronously and are
// observable through the event bus, which makes it the reference backend for
// dry runs and tests, and the fallback when no external engine is usable.
type Scripted struct {
	mu  sync.Mutex
	bus *event.Bus

	elementID string
	cfg       options.Config
	playlist  []options.Item
	index     int

	state     string
	position  float64
	duration  float64
	volume    int
	mute      bool
	rate      float64
	controls  bool
	stretch   string
	fullscr   bool
	width     any
	height    any
	captions  int
	quality   int
	audio     int
	destroyed bool

	caps map[string]Capability
}

// NewScripted returns an idle scripted engine.
func NewScripted() *Scripted {
	s := &Scripted{
		bus:      event.NewBus(),
		state:    event.StateIdle,
		volume:   90,
		rate:     1,
		controls: true,
		stretch:  "uniform",
		duration: 120,
		captions: -1,
		audio:    -1,
	}
	s.caps = s.capabilities()
	return s
}

// Init wires the engine to its mount point and applies the canonical config.
// The ready event is emitted synchronously once initialization completes; the
// facade attaches its bridge before calling Init, so nothing is lost.
func (s *Scripted) Init(elementID string, cfg options.Config) {
	s.mu.Lock()
	s.elementID = elementID
	s.cfg = cfg

	if items, ok := cfg["playlist"].([]options.Item); ok {
		s.playlist = items
	}
	if v, ok := toInt(cfg["volume"]); ok {
		s.volume = clampVolume(v)
	}
	if m, ok := cfg["mute"].(bool); ok {
		s.mute = m
	}
	if c, ok := cfg["controls"].(bool); ok {
		s.controls = c
	}
	if st, ok := cfg["stretching"].(string); ok {
		s.stretch = st
	}
	if r, ok := cfg["defaultPlaybackRate"].(float64); ok && r > 0 {
		s.rate = r
	}
	s.width = cfg["width"]
	s.height = cfg["height"]
	autostart, _ := cfg["autostart"].(bool)
	s.mu.Unlock()

	s.bus.Trigger(event.Playlist, event.Payload{"playlist": s.playlist})
	s.emitItem()
	s.bus.Trigger(event.Ready, event.Payload{})

	if autostart {
		s.play("autostart")
	}
}

// Events returns the engine's full event stream.
func (s *Scripted) Events() *event.Bus {
	return s.bus
}

// Capability resolves a named operation.
func (s *Scripted) Capability(name string) (Capability, bool) {
	c, ok := s.caps[name]
	return c, ok
}

// Destroy releases the engine: further events are silenced and state resets.
func (s *Scripted) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.state = event.StateIdle
	s.mu.Unlock()

	s.bus.Clear()
}

// Advance simulates playback progress, emitting a time event and completing
// the item when the position reaches the duration.
func (s *Scripted) Advance(seconds float64) {
	s.mu.Lock()
	if s.state != event.StatePlaying {
		s.mu.Unlock()
		return
	}
	s.position += seconds
	complete := s.position >= s.duration
	if complete {
		s.position = s.duration
		s.state = event.StateComplete
	}
	pos, dur := s.position, s.duration
	s.mu.Unlock()

	s.bus.Trigger(event.Time, event.Payload{"position": pos, "duration": dur})
	if complete {
		s.bus.Trigger(event.Complete, event.Payload{})
	}
}

func (s *Scripted) play(reason string) {
	s.mu.Lock()
	if s.destroyed || s.state == event.StatePlaying {
		s.mu.Unlock()
		return
	}
	old := s.state
	s.state = event.StateBuffering
	s.mu.Unlock()

	s.bus.Trigger(event.BeforePlay, event.Payload{})
	s.bus.Trigger(event.Buffer, event.Payload{"oldstate": old, "reason": reason})

	s.mu.Lock()
	s.state = event.StatePlaying
	s.mu.Unlock()

	s.bus.Trigger(event.Play, event.Payload{"oldstate": event.StateBuffering, "reason": reason})
}

func (s *Scripted) pause(reason string) {
	s.mu.Lock()
	if s.destroyed || s.state != event.StatePlaying && s.state != event.StateBuffering {
		s.mu.Unlock()
		return
	}
	old := s.state
	s.state = event.StatePaused
	s.mu.Unlock()

	s.bus.Trigger(event.Pause, event.Payload{"oldstate": old, "reason": reason})
}

func (s *Scripted) stop() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.state = event.StateIdle
	s.position = 0
	s.mu.Unlock()

	s.bus.Trigger(event.Idle, event.Payload{})
}

func (s *Scripted) item(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.playlist) {
		s.mu.Unlock()
		return
	}
	s.index = index
	s.position = 0
	s.mu.Unlock()

	s.emitItem()
	s.play("playlist")
}

func (s *Scripted) emitItem() {
	s.mu.Lock()
	var item options.Item
	if s.index < len(s.playlist) {
		item = s.playlist[s.index]
	}
	index := s.index
	s.mu.Unlock()

	s.bus.Trigger(event.Item, event.Payload{"index": index, "item": item})
}

// capabilities builds the full capability map. Every entry operates on the
// engine synchronously and emits the matching events.
func (s *Scripted) capabilities() map[string]Capability {
	locked := func(fn func() any) any {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn()
	}

	return map[string]Capability{
		"play":  func(args ...any) any { s.play(reasonArg(args)); return nil },
		"pause": func(args ...any) any { s.pause(reasonArg(args)); return nil },
		"stop":  func(...any) any { s.stop(); return nil },
		"seek": func(args ...any) any {
			pos, ok := NumArg(args, 0)
			if !ok {
				return nil
			}
			s.mu.Lock()
			offset := s.position
			if pos > s.duration {
				pos = s.duration
			}
			s.position = pos
			s.mu.Unlock()
			s.bus.Trigger(event.Seek, event.Payload{"position": offset, "offset": pos})
			s.bus.Trigger(event.Seeked, event.Payload{"position": pos})
			return nil
		},

		"getState":    func(...any) any { return locked(func() any { return s.state }) },
		"getPosition": func(...any) any { return locked(func() any { return s.position }) },
		"getDuration": func(...any) any { return locked(func() any { return s.duration }) },
		"getBuffer":   func(...any) any { return locked(func() any { return 100.0 }) },
		"getProvider": func(...any) any { return "scripted" },
		"getViewable": func(...any) any { return true },
		"getConfig":   func(...any) any { return locked(func() any { return s.cfg }) },

		"getVolume": func(...any) any { return locked(func() any { return s.volume }) },
		"setVolume": func(args ...any) any {
			v, ok := NumArg(args, 0)
			if !ok {
				return nil
			}
			s.mu.Lock()
			s.volume = clampVolume(int(v))
			vol := s.volume
			s.mu.Unlock()
			s.bus.Trigger(event.VolumeSet, event.Payload{"volume": vol})
			return nil
		},
		"getMute": func(...any) any { return locked(func() any { return s.mute }) },
		"setMute": func(args ...any) any {
			s.mu.Lock()
			if len(args) > 0 {
				s.mute = Arg[bool](args, 0)
			} else {
				s.mute = !s.mute
			}
			mute := s.mute
			s.mu.Unlock()
			s.bus.Trigger(event.Mute, event.Payload{"mute": mute})
			return nil
		},

		"getPlaybackRate": func(...any) any { return locked(func() any { return s.rate }) },
		"setPlaybackRate": func(args ...any) any {
			rate, ok := NumArg(args, 0)
			if !ok || rate <= 0 {
				return nil
			}
			s.mu.Lock()
			s.rate = rate
			s.mu.Unlock()
			s.bus.Trigger(event.RateChange, event.Payload{"playbackRate": rate})
			return nil
		},

		"getPlaylist":      func(...any) any { return locked(func() any { return s.playlist }) },
		"getPlaylistIndex": func(...any) any { return locked(func() any { return s.index }) },
		"getPlaylistItem": func(args ...any) any {
			return locked(func() any {
				i := s.index
				if n, ok := NumArg(args, 0); ok {
					i = int(n)
				}
				if i < 0 || i >= len(s.playlist) {
					return nil
				}
				return s.playlist[i]
			})
		},
		"playlistItem": func(args ...any) any {
			if n, ok := NumArg(args, 0); ok {
				s.item(int(n))
			}
			return nil
		},
		"playlistNext": func(...any) any {
			s.mu.Lock()
			next := s.index + 1
			s.mu.Unlock()
			s.item(next)
			return nil
		},
		"playlistPrev": func(...any) any {
			s.mu.Lock()
			prev := s.index - 1
			s.mu.Unlock()
			s.item(prev)
			return nil
		},
		"load": func(args ...any) any {
			s.mu.Lock()
			if items := Arg[[]options.Item](args, 0); items != nil {
				s.playlist = items
				s.index = 0
				s.position = 0
			}
			playlist := s.playlist
			s.mu.Unlock()
			s.bus.Trigger(event.Playlist, event.Payload{"playlist": playlist})
			s.emitItem()
			return nil
		},

		"getWidth":  func(...any) any { return locked(func() any { return s.width }) },
		"getHeight": func(...any) any { return locked(func() any { return s.height }) },
		"resize": func(args ...any) any {
			s.mu.Lock()
			if len(args) >= 2 {
				s.width, s.height = args[0], args[1]
			}
			w, h := s.width, s.height
			s.mu.Unlock()
			s.bus.Trigger(event.Resize, event.Payload{"width": w, "height": h})
			return nil
		},
		"getFullscreen": func(...any) any { return locked(func() any { return s.fullscr }) },
		"setFullscreen": func(args ...any) any {
			s.mu.Lock()
			if len(args) > 0 {
				s.fullscr = Arg[bool](args, 0)
			} else {
				s.fullscr = !s.fullscr
			}
			fs := s.fullscr
			s.mu.Unlock()
			s.bus.Trigger(event.Fullscreen, event.Payload{"fullscreen": fs})
			return nil
		},
		"getControls": func(...any) any { return locked(func() any { return s.controls }) },
		"setControls": func(args ...any) any {
			s.mu.Lock()
			s.controls = Arg[bool](args, 0)
			c := s.controls
			s.mu.Unlock()
			s.bus.Trigger(event.Controls, event.Payload{"controls": c})
			return nil
		},
		"getStretching": func(...any) any { return locked(func() any { return s.stretch }) },
		"setStretching": func(args ...any) any {
			s.mu.Lock()
			if v := Arg[string](args, 0); v != "" {
				s.stretch = v
			}
			s.mu.Unlock()
			return nil
		},

		"getCaptionsList": func(...any) any {
			return locked(func() any {
				var tracks []options.Track
				if s.index < len(s.playlist) {
					tracks = s.playlist[s.index].Tracks
				}
				return tracks
			})
		},
		"getCurrentCaptions": func(...any) any { return locked(func() any { return s.captions }) },
		"setCurrentCaptions": func(args ...any) any {
			if n, ok := NumArg(args, 0); ok {
				s.mu.Lock()
				s.captions = int(n)
				s.mu.Unlock()
				s.bus.Trigger(event.CaptionsChanged, event.Payload{"track": int(n)})
			}
			return nil
		},

		"getQualityLevels": func(...any) any {
			return locked(func() any {
				var levels []options.Source
				if s.index < len(s.playlist) {
					levels = s.playlist[s.index].Sources
				}
				return levels
			})
		},
		"getCurrentQuality": func(...any) any { return locked(func() any { return s.quality }) },
		"setCurrentQuality": func(args ...any) any {
			if n, ok := NumArg(args, 0); ok {
				s.mu.Lock()
				s.quality = int(n)
				s.mu.Unlock()
				s.bus.Trigger(event.LevelsChanged, event.Payload{"currentQuality": int(n)})
			}
			return nil
		},

		"getAudioTracks":       func(...any) any { return locked(func() any { return []string{} }) },
		"getCurrentAudioTrack": func(...any) any { return locked(func() any { return s.audio }) },
		"setCurrentAudioTrack": func(args ...any) any {
			if n, ok := NumArg(args, 0); ok {
				s.mu.Lock()
				s.audio = int(n)
				s.mu.Unlock()
				s.bus.Trigger(event.AudioTrackSet, event.Payload{"currentTrack": int(n)})
			}
			return nil
		},

		"destroy": func(...any) any { s.Destroy(); return nil },
	}
}

// reasonArg extracts the transition reason from a capability call: a bare
// string, or the reason tag of a metadata mapping.
func reasonArg(args []any) string {
	if s := Arg[string](args, 0); s != "" {
		return s
	}
	for _, a := range args {
		switch m := a.(type) {
		case map[string]any:
			if r, ok := m["reason"].(string); ok {
				return r
			}
		case event.Payload:
			if r, ok := m["reason"].(string); ok {
				return r
			}
		}
	}
	return ""
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
