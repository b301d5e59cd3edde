package event

// Canonical event type tags emitted by playback engines and re-broadcast on the
// player facade. Engines are free to emit additional types; the bridge forwards
// everything regardless.
const (
	Ready    = "ready"
	Remove   = "remove"
	Error    = "error"
	Warning  = "warning"
	Playlist = "playlist"
	Item     = "playlistItem"

	Play       = "play"
	Pause      = "pause"
	Buffer     = "buffer"
	Idle       = "idle"
	Complete   = "complete"
	BeforePlay = "beforePlay"
	FirstFrame = "firstFrame"

	Time   = "time"
	Seek   = "seek"
	Seeked = "seeked"

	Mute       = "mute"
	VolumeSet  = "volume"
	RateChange = "playbackRateChanged"

	Resize     = "resize"
	Fullscreen = "fullscreen"
	Controls   = "controls"

	CaptionsList    = "captionsList"
	CaptionsChanged = "captionsChanged"
	Levels          = "levels"
	LevelsChanged   = "levelsChanged"
	AudioTracks     = "audioTracks"
	AudioTrackSet   = "audioTrackChanged"
)

// Playback states reported through the getState capability.
const (
	StateIdle      = "idle"
	StateBuffering = "buffering"
	StatePlaying   = "playing"
	StatePaused    = "paused"
	StateComplete  = "complete"
)
