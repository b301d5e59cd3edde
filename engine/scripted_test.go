package engine

import (
	"testing"

	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/options"
	. "github.com/smartystreets/goconvey/convey"
)

func call(e Engine, name string, args ...any) any {
	c, ok := e.Capability(name)
	if !ok {
		return nil
	}
	return c(args...)
}

func TestScripted(t *testing.T) {
	Convey("Given an initialized scripted engine", t, func() {
		s := NewScripted()

		var fired []string
		s.Events().On(event.All, func(e string, _ event.Payload) {
			fired = append(fired, e)
		})

		s.Init("surface-1", options.Config{
			"playlist": []options.Item{{File: "a.mp4"}, {File: "b.mp4"}},
			"volume":   40,
		})

		Convey("Init emits playlist, playlistItem and ready in order", func() {
			So(fired, ShouldResemble, []string{event.Playlist, event.Item, event.Ready})
		})

		Convey("Config values land in the capability surface", func() {
			So(call(s, "getVolume"), ShouldEqual, 40)
			So(call(s, "getState"), ShouldEqual, event.StateIdle)
		})

		Convey("play transitions through buffering to playing", func() {
			call(s, "play", "external")

			So(call(s, "getState"), ShouldEqual, event.StatePlaying)
			So(fired, ShouldContain, event.Buffer)
			So(fired, ShouldContain, event.Play)
		})

		Convey("seek clamps to duration and emits seek/seeked", func() {
			call(s, "play", "external")
			call(s, "seek", 999.0)

			So(call(s, "getPosition"), ShouldEqual, call(s, "getDuration"))
			So(fired, ShouldContain, event.Seeked)
		})

		Convey("playlist navigation moves the index and restarts playback", func() {
			call(s, "playlistNext")

			So(call(s, "getPlaylistIndex"), ShouldEqual, 1)
			So(call(s, "getState"), ShouldEqual, event.StatePlaying)

			// Walking past the end is ignored.
			call(s, "playlistNext")
			So(call(s, "getPlaylistIndex"), ShouldEqual, 1)
		})

		Convey("Advance emits time and completes at the end", func() {
			call(s, "play", "external")
			s.Advance(999)

			So(fired, ShouldContain, event.Time)
			So(fired, ShouldContain, event.Complete)
			So(call(s, "getState"), ShouldEqual, event.StateComplete)
		})

		Convey("setMute with no argument toggles", func() {
			call(s, "setMute")
			So(call(s, "getMute"), ShouldEqual, true)
			call(s, "setMute")
			So(call(s, "getMute"), ShouldEqual, false)
		})

		Convey("Destroy silences the bus", func() {
			before := len(fired)
			s.Destroy()
			call(s, "play", "external")

			So(fired, ShouldHaveLength, before)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Provider registry", t, func() {
		Register(&Provider{Name: "test-a", New: func() Engine { return NewScripted() }})
		Register(&Provider{Name: "test-b", Available: func() bool { return false }, New: func() Engine { return NewScripted() }})

		Convey("Get finds registered providers", func() {
			_, ok := Get("test-a")
			So(ok, ShouldBeTrue)

			_, ok = Get("kek")
			So(ok, ShouldBeFalse)
		})

		Convey("Choose falls back to a ready provider when the named one is unavailable", func() {
			So(Choose("test-b"), ShouldNotBeNil)
			So(Choose("missing"), ShouldNotBeNil)
		})

		Convey("Re-registering a name replaces the earlier entry", func() {
			count := len(Available())
			Register(&Provider{Name: "test-a", New: func() Engine { return NewScripted() }})
			So(Available(), ShouldHaveLength, count)
		})
	})
}
