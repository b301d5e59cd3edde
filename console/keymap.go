// Package console provides the interactive playback dashboard.
package console

import (
	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/style"
	"github.com/charmbracelet/bubbles/key"
)

// statefulKeymap defines the keyboard interactions available within various dashboard states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause,
	seekBack, seekForward,
	volumeUp, volumeDown, mute,
	nextItem, prevItem,
	fullscreen,
	openLocation,
	acceptSuggestion,
	confirm,
	back,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified dashboard state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		nextItem: key.NewBinding(
			key.WithKeys("n", ">"),
			key.WithHelp("n", "next item"),
		),
		prevItem: key.NewBinding(
			key.WithKeys("p", "<"),
			key.WithHelp("p", "previous item"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		openLocation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open location"),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// help returns short and full keybinding sets for the current dashboard state.
func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case dashboardState:
		return h(k.playPause, k.seekBack, k.seekForward, k.openLocation, k.showHelp, k.quit),
			h(k.playPause, k.seekBack, k.seekForward, k.volumeUp, k.volumeDown, k.mute,
				k.nextItem, k.prevItem, k.fullscreen, k.openLocation, k.showHelp, k.quit)
	case openState:
		short := h(k.confirm, k.acceptSuggestion, k.back, k.forceQuit)
		return short, short
	case errorState:
		short := h(k.back, k.quit, k.forceQuit)
		return short, short
	default:
		short := h(k.forceQuit)
		return short, short
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
