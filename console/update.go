// Package console provides the interactive playback dashboard.
package console

import (
	"strings"

	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/feed"
	"github.com/playman-cli/playman/internal/ui"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/query"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Init() tea.Cmd {
	return textinput.Blink
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process Ephemeral UI Notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case playerEventMsg:
		if msg.name == event.Warning {
			return b, tea.Batch(cmd, ui.Notify(stringField(msg.data, "message")))
		}

		b.applyEvent(msg.name, msg.data)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.player.Remove()
			return b, tea.Quit
		}

		switch b.state {
		case dashboardState:
			return b.updateDashboard(msg)
		case openState:
			return b.updateOpen(msg)
		case errorState:
			switch {
			case bubblesKey.Matches(msg, b.keymap.back):
				b.lastError = ""
				b.previousState()
			case bubblesKey.Matches(msg, b.keymap.quit):
				b.player.Remove()
				return b, tea.Quit
			}
		}
	}

	return b, cmd
}

func (b *statefulBubble) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seekStep := viper.GetFloat64(key.ConsoleSeekStep)
	volumeStep := viper.GetInt(key.ConsoleVolumeStep)

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		b.player.Remove()
		return b, tea.Quit
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.player.Play()
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		b.player.Seek(max(0, b.position-seekStep))
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		b.player.Seek(b.position + seekStep)
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		b.player.SetVolume(min(100, b.volume+volumeStep))
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		b.player.SetVolume(max(0, b.volume-volumeStep))
	case bubblesKey.Matches(msg, b.keymap.mute):
		b.player.SetMute()
	case bubblesKey.Matches(msg, b.keymap.nextItem):
		b.player.PlaylistNext()
	case bubblesKey.Matches(msg, b.keymap.prevItem):
		b.player.PlaylistPrev()
	case bubblesKey.Matches(msg, b.keymap.fullscreen):
		b.player.SetFullscreen()
	case bubblesKey.Matches(msg, b.keymap.openLocation):
		b.pushState(openState)
		return b, textinput.Blink
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return b, nil
}

func (b *statefulBubble) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		b.previousState()
		return b, nil
	case bubblesKey.Matches(msg, b.keymap.acceptSuggestion) && b.openSuggestion.IsPresent():
		b.inputC.SetValue(b.openSuggestion.MustGet())
		b.inputC.CursorEnd()
		b.openSuggestion = mo.None[string]()
		return b, nil
	case bubblesKey.Matches(msg, b.keymap.confirm):
		location := strings.TrimSpace(b.inputC.Value())
		if location == "" {
			return b, nil
		}

		if !b.openLocation(location) {
			return b, nil
		}

		b.previousState()
		return b, ui.Notify("Opened " + location)
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
		b.openSuggestion = mo.Some(suggestion)
	} else {
		b.openSuggestion = mo.None[string]()
	}

	return b, cmd
}

// openLocation loads a media location (or a remote feed) into the player and
// starts playback. Failures surface on the error screen instead of aborting
// the loop.
func (b *statefulBubble) openLocation(location string) bool {
	if feed.IsFeedURL(location) {
		content, err := feed.Load(location)
		if err != nil {
			b.lastError = err.Error()
			b.pushState(errorState)
			return false
		}

		b.player.Load(content)
	} else {
		b.player.Load(location)
	}

	b.player.Play(true)
	_ = query.Remember(location, 1)
	return true
}
