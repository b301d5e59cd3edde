package api

import (
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/options"
)

// The convenience surface. Every method here is a thin delegation of a named
// engine capability through CallInternal; absence of the capability (or of an
// engine) degrades to the documented neutral value.

// Playback state

// GetState retrieves the playback state: idle, buffering, playing, paused or
// complete.
func (p *Player) GetState() string {
	if state := stringValue(p.CallInternal("getState")); state != "" {
		return state
	}
	return event.StateIdle
}

// GetPosition retrieves the current playback position in seconds.
func (p *Player) GetPosition() float64 {
	return floatValue(p.CallInternal("getPosition"))
}

// GetDuration retrieves the duration of the current media in seconds.
func (p *Player) GetDuration() float64 {
	return floatValue(p.CallInternal("getDuration"))
}

// GetBuffer retrieves the buffered media horizon in seconds.
func (p *Player) GetBuffer() float64 {
	return floatValue(p.CallInternal("getBuffer"))
}

// GetViewable reports whether the playback surface is currently visible.
func (p *Player) GetViewable() bool {
	return boolValue(p.CallInternal("getViewable"))
}

// GetProvider retrieves the name of the wired engine provider.
func (p *Player) GetProvider() string {
	return stringValue(p.CallInternal("getProvider"))
}

// GetConfig retrieves the canonical configuration the engine was handed.
func (p *Player) GetConfig() options.Config {
	if cfg, ok := p.CallInternal("getConfig").(options.Config); ok {
		return cfg
	}
	return nil
}

// Transport controls

// Seek moves playback to an absolute position in seconds.
func (p *Player) Seek(position float64) *Player {
	p.CallInternal("seek", position)
	return p
}

// Stop halts playback and resets the engine to idle.
func (p *Player) Stop() *Player {
	p.CallInternal("stop")
	return p
}

// Volume

// GetVolume retrieves the playback volume in the 0-100 range.
func (p *Player) GetVolume() int {
	return intValue(p.CallInternal("getVolume"))
}

// SetVolume assigns the playback volume in the 0-100 range.
func (p *Player) SetVolume(volume int) *Player {
	p.CallInternal("setVolume", volume)
	return p
}

// GetMute retrieves the mute state.
func (p *Player) GetMute() bool {
	return boolValue(p.CallInternal("getMute"))
}

// SetMute assigns the mute state; with no argument the state toggles.
func (p *Player) SetMute(mute ...bool) *Player {
	if len(mute) == 0 {
		p.CallInternal("setMute")
	} else {
		p.CallInternal("setMute", mute[0])
	}
	return p
}

// Playback rate

// GetPlaybackRate retrieves the playback rate multiplier.
func (p *Player) GetPlaybackRate() float64 {
	if rate := floatValue(p.CallInternal("getPlaybackRate")); rate > 0 {
		return rate
	}
	return 1
}

// SetPlaybackRate assigns the playback rate multiplier.
func (p *Player) SetPlaybackRate(rate float64) *Player {
	p.CallInternal("setPlaybackRate", rate)
	return p
}

// Playlist

// GetPlaylist retrieves the canonical playlist.
func (p *Player) GetPlaylist() []options.Item {
	if items, ok := p.CallInternal("getPlaylist").([]options.Item); ok {
		return items
	}
	return nil
}

// GetPlaylistIndex retrieves the index of the active playlist item.
func (p *Player) GetPlaylistIndex() int {
	return intValue(p.CallInternal("getPlaylistIndex"))
}

// GetPlaylistItem retrieves the playlist item at the given index, or the
// active item when no index is supplied.
func (p *Player) GetPlaylistItem(index ...int) options.Item {
	var result any
	if len(index) == 0 {
		result = p.CallInternal("getPlaylistItem")
	} else {
		result = p.CallInternal("getPlaylistItem", index[0])
	}

	if item, ok := result.(options.Item); ok {
		return item
	}
	return options.Item{}
}

// PlaylistItem starts playback of the playlist item at the given index.
func (p *Player) PlaylistItem(index int) *Player {
	p.CallInternal("playlistItem", index)
	return p
}

// PlaylistNext advances to the next playlist item.
func (p *Player) PlaylistNext() *Player {
	p.CallInternal("playlistNext")
	return p
}

// PlaylistPrev returns to the previous playlist item.
func (p *Player) PlaylistPrev() *Player {
	p.CallInternal("playlistPrev")
	return p
}

// Next advances to the next playlist item, tagging the transition as an
// external request.
func (p *Player) Next() *Player {
	p.CallInternal("playlistNext", event.Payload{"reason": "external"})
	return p
}

// Load replaces the playlist with new content: an item list, a single item,
// a feed object, or a bare media location. Content that yields no playable
// items is ignored.
func (p *Player) Load(content any) *Player {
	if items := options.Items(content); len(items) > 0 {
		p.CallInternal("load", items)
	}
	return p
}

// Surface

// GetWidth retrieves the playback surface width.
func (p *Player) GetWidth() int {
	return intValue(p.CallInternal("getWidth"))
}

// GetHeight retrieves the playback surface height.
func (p *Player) GetHeight() int {
	return intValue(p.CallInternal("getHeight"))
}

// Resize reshapes the playback surface.
func (p *Player) Resize(width, height int) *Player {
	p.CallInternal("resize", width, height)
	return p
}

// GetFullscreen retrieves the fullscreen state.
func (p *Player) GetFullscreen() bool {
	return boolValue(p.CallInternal("getFullscreen"))
}

// SetFullscreen assigns the fullscreen state; with no argument the state toggles.
func (p *Player) SetFullscreen(fullscreen ...bool) *Player {
	if len(fullscreen) == 0 {
		p.CallInternal("setFullscreen")
	} else {
		p.CallInternal("setFullscreen", fullscreen[0])
	}
	return p
}

// GetStretching retrieves the surface scaling mode.
func (p *Player) GetStretching() string {
	return stringValue(p.CallInternal("getStretching"))
}

// SetStretching assigns the surface scaling mode.
func (p *Player) SetStretching(mode string) *Player {
	p.CallInternal("setStretching", mode)
	return p
}

// GetControls retrieves whether the built-in controls are displayed.
func (p *Player) GetControls() bool {
	return boolValue(p.CallInternal("getControls"))
}

// SetControls assigns whether the built-in controls are displayed.
func (p *Player) SetControls(controls bool) *Player {
	p.CallInternal("setControls", controls)
	return p
}

// Captions

// GetCaptionsList retrieves the available caption tracks.
func (p *Player) GetCaptionsList() []options.Track {
	if tracks, ok := p.CallInternal("getCaptionsList").([]options.Track); ok {
		return tracks
	}
	return nil
}

// GetCurrentCaptions retrieves the index of the active caption track, -1 when
// captions are off.
func (p *Player) GetCurrentCaptions() int {
	if v := p.CallInternal("getCurrentCaptions"); v != nil {
		return intValue(v)
	}
	return -1
}

// SetCurrentCaptions activates the caption track at the given index; a
// negative index turns captions off.
func (p *Player) SetCurrentCaptions(index int) *Player {
	p.CallInternal("setCurrentCaptions", index)
	return p
}

// Quality

// GetQualityLevels retrieves the available quality levels, the renderable
// source variants of the active item.
func (p *Player) GetQualityLevels() []options.Source {
	if levels, ok := p.CallInternal("getQualityLevels").([]options.Source); ok {
		return levels
	}
	return nil
}

// GetCurrentQuality retrieves the index of the active quality level.
func (p *Player) GetCurrentQuality() int {
	return intValue(p.CallInternal("getCurrentQuality"))
}

// SetCurrentQuality activates the quality level at the given index.
func (p *Player) SetCurrentQuality(index int) *Player {
	p.CallInternal("setCurrentQuality", index)
	return p
}

// Audio tracks

// GetAudioTracks retrieves the labels of the available audio tracks.
func (p *Player) GetAudioTracks() []string {
	if tracks, ok := p.CallInternal("getAudioTracks").([]string); ok {
		return tracks
	}
	return nil
}

// GetCurrentAudioTrack retrieves the index of the active audio track.
func (p *Player) GetCurrentAudioTrack() int {
	if v := p.CallInternal("getCurrentAudioTrack"); v != nil {
		return intValue(v)
	}
	return -1
}

// SetCurrentAudioTrack activates the audio track at the given index.
func (p *Player) SetCurrentAudioTrack(index int) *Player {
	p.CallInternal("setCurrentAudioTrack", index)
	return p
}

// Deprecated aliases, kept as exact pass-throughs for compatibility.

// Item starts playback of the playlist item at the given index.
//
// Deprecated: Use PlaylistItem.
func (p *Player) Item(index int) *Player {
	return p.PlaylistItem(index)
}

// CurrentItem retrieves the index of the active playlist item.
//
// Deprecated: Use GetPlaylistIndex.
func (p *Player) CurrentItem() int {
	return p.GetPlaylistIndex()
}

// Rate retrieves the playback rate multiplier.
//
// Deprecated: Use GetPlaybackRate.
func (p *Player) Rate() float64 {
	return p.GetPlaybackRate()
}

// SetRate assigns the playback rate multiplier.
//
// Deprecated: Use SetPlaybackRate.
func (p *Player) SetRate(rate float64) *Player {
	return p.SetPlaybackRate(rate)
}

// ToggleMute inverts the mute state.
//
// Deprecated: Use SetMute with no argument.
func (p *Player) ToggleMute() *Player {
	return p.SetMute()
}

// Coercion helpers for capability results.

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
