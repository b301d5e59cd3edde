// Package console provides the interactive playback dashboard.
//
// The dashboard drives a single live player: it mirrors the events the player
// broadcasts and translates keypresses into facade calls.
package console

import (
	"github.com/playman-cli/playman/api"
	"github.com/playman-cli/playman/event"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the playback dashboard.
type Options struct {
	Player *api.Player
}

// Run initializes and executes the dashboard's Bubble Tea application loop.
// It blocks until the user quits; the player is removed on exit.
func Run(options *Options) error {
	bubble := newStatefulBubble(options.Player)
	program := tea.NewProgram(bubble, tea.WithAltScreen())

	handle := options.Player.OnEvent(event.All, func(name string, data event.Payload) {
		program.Send(playerEventMsg{name: name, data: data})
	})
	defer options.Player.OffEvent(event.All, handle)

	_, err := program.Run()
	return err
}
