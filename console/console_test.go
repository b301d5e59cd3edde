package console

import (
	"testing"

	"github.com/playman-cli/playman/api"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/options"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()

	viper.Set(key.ConsoleSeekStep, 10)
	viper.Set(key.ConsoleVolumeStep, 5)
	viper.Set(key.ConsoleSuggestions, true)
	viper.Set(key.QueriesRemember, true)
}

func livePlayer(cfg options.Config) *api.Player {
	return api.NewRegistry().Register("console-test").Setup(cfg)
}

func keyPress(runes string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)}
}

func TestFormatClock(t *testing.T) {
	Convey("Positions format as clocks", t, func() {
		So(formatClock(0), ShouldEqual, "00:00")
		So(formatClock(83), ShouldEqual, "01:23")
		So(formatClock(3599), ShouldEqual, "59:59")
		So(formatClock(3600), ShouldEqual, "1:00:00")
		So(formatClock(7384.9), ShouldEqual, "2:03:04")
		So(formatClock(-5), ShouldEqual, "00:00")
	})
}

func TestApplyEvent(t *testing.T) {
	Convey("Given a dashboard over a live player", t, func() {
		bubble := newStatefulBubble(livePlayer(options.Config{
			"playlist": []options.Item{
				{Title: "First", File: "/media/first.mp4"},
				{Title: "Second", File: "/media/second.mp4"},
			},
		}))

		Convey("time events update the clock mirror", func() {
			bubble.applyEvent(event.Time, event.Payload{"position": 42.5, "duration": 120.0})

			So(bubble.position, ShouldEqual, 42.5)
			So(bubble.duration, ShouldEqual, 120.0)
		})

		Convey("state events update the play state", func() {
			bubble.applyEvent(event.Play, event.Payload{})
			So(bubble.playState, ShouldEqual, event.StatePlaying)

			bubble.applyEvent(event.Buffer, event.Payload{})
			So(bubble.playState, ShouldEqual, event.StateBuffering)

			bubble.applyEvent(event.Pause, event.Payload{})
			So(bubble.playState, ShouldEqual, event.StatePaused)

			bubble.applyEvent(event.Complete, event.Payload{})
			So(bubble.playState, ShouldEqual, event.StateComplete)
		})

		Convey("audio events update volume, mute and rate", func() {
			bubble.applyEvent(event.VolumeSet, event.Payload{"volume": 55})
			So(bubble.volume, ShouldEqual, 55)

			bubble.applyEvent(event.Mute, event.Payload{"mute": true})
			So(bubble.muted, ShouldBeTrue)

			bubble.applyEvent(event.RateChange, event.Payload{"playbackRate": 1.5})
			So(bubble.rate, ShouldEqual, 1.5)
		})

		Convey("item events move the playlist cursor", func() {
			bubble.applyEvent(event.Item, event.Payload{"index": 1})

			So(bubble.index, ShouldEqual, 1)
			item, ok := bubble.currentItem().Get()
			So(ok, ShouldBeTrue)
			So(item.Title, ShouldEqual, "Second")
		})

		Convey("error events surface the message and switch state", func() {
			bubble.applyEvent(event.Error, event.Payload{"message": "engine gone"})

			So(bubble.state, ShouldEqual, errorState)
			So(bubble.lastError, ShouldEqual, "engine gone")
		})
	})
}

func TestDashboardKeys(t *testing.T) {
	Convey("Given a dashboard over a live player", t, func() {
		player := livePlayer(options.Config{
			"playlist": []options.Item{
				{Title: "First", File: "/media/first.mp4"},
				{Title: "Second", File: "/media/second.mp4"},
			},
			"volume": 50,
		})
		bubble := newStatefulBubble(player)
		bubble.resize(80, 24)

		Convey("space toggles playback", func() {
			bubble.Update(tea.KeyMsg{Type: tea.KeySpace})
			So(player.GetState(), ShouldEqual, event.StatePlaying)

			bubble.applyEvent(event.Play, event.Payload{})
			bubble.Update(tea.KeyMsg{Type: tea.KeySpace})
			So(player.GetState(), ShouldEqual, event.StatePaused)
		})

		Convey("arrow keys seek by the configured step", func() {
			bubble.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(player.GetPosition(), ShouldEqual, 10)

			bubble.applyEvent(event.Seeked, event.Payload{"position": 10.0})
			bubble.Update(tea.KeyMsg{Type: tea.KeyLeft})
			So(player.GetPosition(), ShouldEqual, 0)
		})

		Convey("seeking back never goes below zero", func() {
			bubble.position = 3
			bubble.Update(tea.KeyMsg{Type: tea.KeyLeft})
			So(player.GetPosition(), ShouldEqual, 0)
		})

		Convey("volume keys step within bounds", func() {
			bubble.Update(tea.KeyMsg{Type: tea.KeyUp})
			So(player.GetVolume(), ShouldEqual, 55)

			bubble.volume = 98
			bubble.Update(tea.KeyMsg{Type: tea.KeyUp})
			So(player.GetVolume(), ShouldEqual, 100)

			bubble.volume = 2
			bubble.Update(tea.KeyMsg{Type: tea.KeyDown})
			So(player.GetVolume(), ShouldEqual, 0)
		})

		Convey("m toggles mute", func() {
			bubble.Update(keyPress("m"))
			So(player.GetMute(), ShouldBeTrue)

			bubble.Update(keyPress("m"))
			So(player.GetMute(), ShouldBeFalse)
		})

		Convey("n and p walk the playlist", func() {
			bubble.Update(keyPress("n"))
			So(player.GetPlaylistIndex(), ShouldEqual, 1)

			bubble.Update(keyPress("p"))
			So(player.GetPlaylistIndex(), ShouldEqual, 0)
		})

		Convey("o opens the location prompt", func() {
			bubble.Update(keyPress("o"))

			So(bubble.state, ShouldEqual, openState)
			So(bubble.keymap.state, ShouldEqual, openState)
		})
	})
}

func TestOpenLocation(t *testing.T) {
	Convey("Given the open prompt", t, func() {
		player := livePlayer(options.Config{
			"playlist": []options.Item{{Title: "First", File: "/media/first.mp4"}},
		})
		bubble := newStatefulBubble(player)
		bubble.newState(openState)

		Convey("confirming a location replaces the playlist and starts playback", func() {
			bubble.inputC.SetValue("/media/replacement.mkv")
			bubble.Update(tea.KeyMsg{Type: tea.KeyEnter})

			So(bubble.state, ShouldEqual, dashboardState)

			playlist := player.GetPlaylist()
			So(playlist, ShouldHaveLength, 1)
			So(playlist[0].File, ShouldEqual, "/media/replacement.mkv")
			So(player.GetState(), ShouldEqual, event.StatePlaying)
		})

		Convey("confirming a blank value stays on the prompt", func() {
			bubble.inputC.SetValue("   ")
			bubble.Update(tea.KeyMsg{Type: tea.KeyEnter})

			So(bubble.state, ShouldEqual, openState)
		})

		Convey("escape returns to the dashboard without loading", func() {
			bubble.inputC.SetValue("/media/abandoned.mkv")
			bubble.Update(tea.KeyMsg{Type: tea.KeyEsc})

			So(bubble.state, ShouldEqual, dashboardState)
			So(player.GetPlaylist()[0].File, ShouldEqual, "/media/first.mp4")
		})
	})
}

func TestKeymapHelp(t *testing.T) {
	Convey("Help adapts to the dashboard state", t, func() {
		keymap := newStatefulKeymap()

		keymap.setState(dashboardState)
		short, full := keymap.help()
		So(len(full), ShouldBeGreaterThan, len(short))

		keymap.setState(openState)
		short, full = keymap.help()
		So(short, ShouldResemble, full)
		So(keymap.ShortHelp(), ShouldHaveLength, len(short))
		So(keymap.FullHelp(), ShouldHaveLength, 1)
	})
}

func TestDashboardView(t *testing.T) {
	Convey("Given a resized dashboard", t, func() {
		player := livePlayer(options.Config{
			"playlist": []options.Item{{Title: "Documentary", File: "/media/doc.mp4"}},
		})
		bubble := newStatefulBubble(player)
		bubble.resize(80, 24)

		Convey("the dashboard names the current item", func() {
			So(bubble.View(), ShouldContainSubstring, "Documentary")
		})

		Convey("items without titles fall back to the media location", func() {
			bubble.playlist = []options.Item{{File: "/media/unnamed.mp4"}}
			bubble.index = 0

			So(bubble.itemTitle(), ShouldEqual, "/media/unnamed.mp4")
		})

		Convey("an empty playlist renders a placeholder", func() {
			bubble.playlist = nil

			So(bubble.itemTitle(), ShouldEqual, "Nothing loaded")
		})

		Convey("zero duration renders a bare clock", func() {
			bubble.position = 30
			bubble.duration = 0

			So(bubble.progressLine(), ShouldEqual, "00:30 / 00:00")
		})

		Convey("the error view wraps the failure message", func() {
			bubble.applyEvent(event.Error, event.Payload{"message": "socket closed"})

			So(bubble.View(), ShouldContainSubstring, "socket closed")
		})
	})
}
