// Package console provides the interactive playback dashboard.
package console

import (
	"github.com/playman-cli/playman/api"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/internal/ui"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/options"
	"github.com/playman-cli/playman/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// playerEventMsg carries a player event into the Bubble Tea loop.
type playerEventMsg struct {
	name string
	data event.Payload
}

// statefulBubble is the Bubble Tea model backing the playback dashboard. It
// mirrors the player's reported state so that View never has to call into the
// player from the render path.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap
	player *api.Player

	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model
	notifier  ui.Model

	width, height int

	playState  string
	position   float64
	duration   float64
	volume     int
	muted      bool
	rate       float64
	fullscreen bool
	playlist   []options.Item
	index      int

	openSuggestion mo.Option[string]
	lastError      string

	statesChain util.Stack[state]
}

func newStatefulBubble(player *api.Player) *statefulBubble {
	bubble := &statefulBubble{
		keymap: newStatefulKeymap(),
		player: player,
	}

	bubble.helpC = help.New()

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Media location or feed URL"
	bubble.inputC.CharLimit = 256
	bubble.inputC.Prompt = viper.GetString(key.ConsolePromptString)

	bubble.progressC = progress.New(progress.WithDefaultGradient())
	bubble.progressC.ShowPercentage = false

	// Seed dimensions before the first WindowSizeMsg so the initial render
	// isn't zero-width.
	if width, height, err := util.TerminalSize(); err == nil {
		bubble.resize(width, height)
	}

	bubble.snapshot()
	bubble.newState(dashboardState)

	return bubble
}

// pushState transitions the dashboard while recording the previous state so
// previousState can walk back.
func (b *statefulBubble) pushState(newState state) {
	if newState == b.state {
		return
	}

	b.statesChain.Push(b.state)
	b.newState(newState)
}

// previousState pops the state chain, falling back to the dashboard when the
// chain is exhausted.
func (b *statefulBubble) previousState() {
	if b.statesChain.Len() > 0 {
		b.newState(b.statesChain.Pop())
		return
	}

	b.newState(dashboardState)
}

// newState transitions the dashboard and keeps the keymap and input focus in sync.
func (b *statefulBubble) newState(newState state) {
	b.state = newState
	b.keymap.setState(newState)

	if newState == openState {
		b.inputC.SetValue("")
		b.openSuggestion = mo.None[string]()
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// snapshot pulls the player's current state into the local mirror. Called on
// construction and again whenever the engine reports ready.
func (b *statefulBubble) snapshot() {
	b.playState = b.player.GetState()
	b.position = b.player.GetPosition()
	b.duration = b.player.GetDuration()
	b.volume = b.player.GetVolume()
	b.muted = b.player.GetMute()
	b.rate = b.player.GetPlaybackRate()
	b.fullscreen = b.player.GetFullscreen()
	b.playlist = b.player.GetPlaylist()
	b.index = b.player.GetPlaylistIndex()
}

// applyEvent folds a single player event into the mirrored state.
func (b *statefulBubble) applyEvent(name string, data event.Payload) {
	switch name {
	case event.Ready:
		b.snapshot()
	case event.Time:
		b.position = floatField(data, "position")
		b.duration = floatField(data, "duration")
	case event.Seeked:
		b.position = floatField(data, "position")
	case event.Play:
		b.playState = event.StatePlaying
	case event.Pause:
		b.playState = event.StatePaused
	case event.Buffer:
		b.playState = event.StateBuffering
	case event.Idle:
		b.playState = event.StateIdle
	case event.Complete:
		b.playState = event.StateComplete
	case event.VolumeSet:
		b.volume = intField(data, "volume")
	case event.Mute:
		b.muted = boolField(data, "mute")
	case event.RateChange:
		b.rate = floatField(data, "playbackRate")
	case event.Fullscreen:
		b.fullscreen = boolField(data, "fullscreen")
	case event.Item:
		b.index = intField(data, "index")
		b.playlist = b.player.GetPlaylist()
	case event.Playlist:
		b.playlist = b.player.GetPlaylist()
		b.index = b.player.GetPlaylistIndex()
	case event.Error:
		b.lastError = stringField(data, "message")
		b.pushState(errorState)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.helpC.Width = b.width
	b.inputC.Width = b.width

	b.progressC.Width = b.width
	if b.progressC.Width > 64 {
		b.progressC.Width = 64
	}
}

// currentItem returns the playlist entry under the cursor, if any.
func (b *statefulBubble) currentItem() mo.Option[options.Item] {
	if b.index < 0 || b.index >= len(b.playlist) {
		return mo.None[options.Item]()
	}

	return mo.Some(b.playlist[b.index])
}

// Payload Field Coercion Helpers - engines report numerics with varying concrete types.
func floatField(data event.Payload, field string) float64 {
	switch v := data[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func intField(data event.Payload, field string) int {
	return int(floatField(data, field))
}

func boolField(data event.Payload, field string) bool {
	v, _ := data[field].(bool)
	return v
}

func stringField(data event.Payload, field string) string {
	v, _ := data[field].(string)
	return v
}
