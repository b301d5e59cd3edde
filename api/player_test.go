package api

import (
	"testing"

	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/options"
	"github.com/playman-cli/playman/plugin"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPlayerLifecycle(t *testing.T) {
	Convey("Given a registered player", t, func() {
		registry := NewRegistry()
		p := registry.Register("main")

		Convey("Setup wires an engine and delivers ready with setup timing", func() {
			var readyPayload event.Payload
			p.On(event.Ready, func(_ string, data event.Payload) {
				readyPayload = data
			})

			// Pre-setup listeners are cleared by teardown; attach via an
			// embedded handler option instead.
			got := make(chan event.Payload, 1)
			result := p.Setup(options.Config{
				"onReady": func(_ string, data event.Payload) {
					got <- data
				},
			})

			So(result, ShouldEqual, p)
			So(readyPayload, ShouldBeNil)

			payload := <-got
			So(payload["type"], ShouldEqual, event.Ready)
			So(payload["setupTime"], ShouldNotBeNil)
			So(payload["setupTime"].(float64), ShouldBeGreaterThanOrEqualTo, 0)
		})

		Convey("Setup twice detaches the first engine's wiring completely", func() {
			var deliveries int

			p.Setup(options.Config{})
			first := p.CallInternal("getConfig")
			So(first, ShouldNotBeNil)

			p.Setup(options.Config{
				"onPlay": func(string, event.Payload) {
					deliveries++
				},
			})

			p.Play(true)
			So(deliveries, ShouldEqual, 1)
		})

		Convey("Remove unregisters, notifies and is idempotent", func() {
			p.Setup(options.Config{})

			var removed int
			p.On(event.Remove, func(string, event.Payload) {
				removed++
			})

			So(func() { p.Remove().Remove() }, ShouldNotPanic)
			So(removed, ShouldEqual, 1)
			So(registry.Size(), ShouldEqual, 0)

			Convey("And a removed player ignores further setup", func() {
				p.Setup(options.Config{})
				So(p.CallInternal("getState"), ShouldBeNil)
			})
		})

		Convey("CallInternal degrades to nil before setup", func() {
			So(p.CallInternal("getState"), ShouldBeNil)
			So(p.GetState(), ShouldEqual, event.StateIdle)
		})
	})
}

func TestPlayToggle(t *testing.T) {
	Convey("Given a live player", t, func() {
		registry := NewRegistry()
		p := registry.Register("toggle").Setup(options.Config{})

		Convey("A forced play then a bare play toggles to pause", func() {
			p.Play(true)
			So(p.GetState(), ShouldEqual, event.StatePlaying)

			p.Play()
			So(p.GetState(), ShouldEqual, event.StatePaused)
		})

		Convey("A bare play from paused resumes", func() {
			p.Play(true)
			p.Play(false)
			So(p.GetState(), ShouldEqual, event.StatePaused)

			p.Play()
			So(p.GetState(), ShouldEqual, event.StatePlaying)
		})

		Convey("Pause inverts its boolean into play", func() {
			p.Pause(false)
			So(p.GetState(), ShouldEqual, event.StatePlaying)

			p.Pause(true)
			So(p.GetState(), ShouldEqual, event.StatePaused)
		})

		Convey("The default reason tag is external", func() {
			var reason any
			p.On(event.Play, func(_ string, data event.Payload) {
				reason = data["reason"]
			})

			p.Play(true)
			So(reason, ShouldEqual, "external")
		})

		Convey("Caller metadata maps are forwarded but never written to", func() {
			var got event.Payload
			p.On(event.Play, func(_ string, data event.Payload) {
				got = data
			})

			meta := map[string]any{"source": "remote"}
			p.Play(true, meta)

			So(got["source"], ShouldEqual, "remote")
			So(got["reason"], ShouldEqual, "external")
			So(meta, ShouldNotContainKey, "reason")
		})
	})
}

func TestTrigger(t *testing.T) {
	Convey("Trigger", t, func() {
		registry := NewRegistry()
		p := registry.Register("trigger")

		Convey("Should stamp the payload with the event name", func() {
			var got event.Payload
			p.On("custom", func(_ string, data event.Payload) {
				got = data
			})

			p.Trigger("custom", event.Payload{"value": 1})
			So(got["type"], ShouldEqual, "custom")
			So(got["value"], ShouldEqual, 1)
		})

		Convey("Should hand each listener its own copy", func() {
			original := event.Payload{"value": 1}

			p.On("custom", func(_ string, data event.Payload) {
				data["value"] = 99
			})
			p.Trigger("custom", original)

			So(original["value"], ShouldEqual, 1)
		})
	})
}

func TestConvenienceSurface(t *testing.T) {
	Convey("Given a live player", t, func() {
		registry := NewRegistry()
		p := registry.Register("surface").Setup(options.Config{
			"playlist": []options.Item{
				{File: "a.mp4", Title: "A"},
				{File: "b.mp4", Title: "B"},
			},
			"volume": 40,
		})

		Convey("Volume and mute delegate and chain", func() {
			So(p.GetVolume(), ShouldEqual, 40)
			So(p.SetVolume(70).GetVolume(), ShouldEqual, 70)

			So(p.GetMute(), ShouldBeFalse)
			So(p.SetMute().GetMute(), ShouldBeTrue)
			So(p.SetMute(false).GetMute(), ShouldBeFalse)
			So(p.ToggleMute().GetMute(), ShouldBeTrue)
		})

		Convey("Playlist navigation delegates", func() {
			So(len(p.GetPlaylist()), ShouldEqual, 2)
			So(p.GetPlaylistIndex(), ShouldEqual, 0)
			So(p.GetPlaylistItem().Title, ShouldEqual, "A")
			So(p.GetPlaylistItem(1).Title, ShouldEqual, "B")

			p.PlaylistNext()
			So(p.GetPlaylistIndex(), ShouldEqual, 1)

			p.PlaylistPrev()
			So(p.CurrentItem(), ShouldEqual, 0)
		})

		Convey("Rate methods and their aliases agree", func() {
			p.SetPlaybackRate(1.5)
			So(p.GetPlaybackRate(), ShouldEqual, 1.5)
			So(p.Rate(), ShouldEqual, 1.5)

			p.SetRate(2)
			So(p.GetPlaybackRate(), ShouldEqual, 2)
		})

		Convey("Seek clamps into the media duration", func() {
			p.Play(true)
			p.Seek(99999)
			So(p.GetPosition(), ShouldEqual, p.GetDuration())
		})

		Convey("Unknown capabilities yield neutral values", func() {
			So(p.CallInternal("noSuchCapability"), ShouldBeNil)
		})
	})
}

func TestPlugins(t *testing.T) {
	Convey("Plugins", t, func() {
		registry := NewRegistry()

		Convey("AddPlugin invokes the plugin on ready", func() {
			p := registry.Register("plugged")

			added := make(chan string, 1)
			p.AddPlugin("overlay", pluginFunc(func(api plugin.Api) {
				added <- api.ID()
			}))

			p.Setup(options.Config{})
			So(<-added, ShouldEqual, "plugged")
		})

		Convey("Plugins trigger and subscribe through their facade", func() {
			p := registry.Register("facade-plugged")

			var got plugin.Api
			p.AddPlugin("announcer", pluginFunc(func(api plugin.Api) {
				got = api
			}))
			p.Setup(options.Config{})
			So(got, ShouldNotBeNil)

			var heard event.Payload
			handle := got.OnEvent("announcement", func(_ string, data event.Payload) {
				heard = data
			})

			got.Trigger("announcement", event.Payload{"text": "hi"})
			So(heard["text"], ShouldEqual, "hi")
			So(heard["type"], ShouldEqual, "announcement")

			got.OffEvent("announcement", handle)
		})

		Convey("Configured plugins are instantiated from the process registry", func() {
			invoked := make(chan map[string]any, 1)
			err := plugin.Register("configured-overlay", "", func(cfg map[string]any) (plugin.Plugin, error) {
				return pluginFunc(func(plugin.Api) {
					invoked <- cfg
				}), nil
			})
			So(err, ShouldBeNil)

			registry.Register("cfg-plugged").Setup(options.Config{
				"plugins": map[string]any{
					"configured-overlay": map[string]any{"option": "value"},
				},
			})

			cfg := <-invoked
			So(cfg["option"], ShouldEqual, "value")
		})

		Convey("GetPlugin resolves recorded instances", func() {
			p := registry.Register("lookup")
			instance := pluginFunc(func(plugin.Api) {})
			p.AddPlugin("mine", instance)

			got, ok := p.GetPlugin("mine")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, instance)
		})
	})
}

// pluginFunc adapts a bare function to the plugin interface.
type pluginFunc func(api plugin.Api)

func (f pluginFunc) AddToPlayer(api plugin.Api) { f(api) }

func TestDegradedPlayer(t *testing.T) {
	Convey("A degraded player", t, func() {
		p := SelectPlayer(3.14)

		Convey("Ignores lifecycle calls without panicking", func() {
			So(func() {
				p.Setup(options.Config{}).Play(true).Remove()
			}, ShouldNotPanic)
			So(p.GetState(), ShouldEqual, event.StateIdle)
		})

		Convey("Still exposes plugin registration", func() {
			err := p.RegisterPlugin("degraded-overlay", "", func(cfg map[string]any) (plugin.Plugin, error) {
				return pluginFunc(func(plugin.Api) {}), nil
			})
			So(err, ShouldBeNil)
		})
	})
}

var _ engine.Destroyer = (*engine.Scripted)(nil)
