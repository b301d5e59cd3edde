package mpv

import (
	"testing"

	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/options"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http and https URLs", func() {
			out, err := sanitizeMediaTarget("https://cdn.example.com/clip.mp4")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "https://cdn.example.com/clip.mp4")
		})

		Convey("Should reject flag-shaped input", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("clip\n.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/clip.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Should clean local paths", func() {
			out, err := sanitizeMediaTarget("./media/../clip.mp4")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "clip.mp4")
		})
	})
}

func TestItemTitle(t *testing.T) {
	Convey("itemTitle", t, func() {
		Convey("Should prefer the item's own title", func() {
			title := itemTitle(options.Item{Title: "Big Buck Bunny", File: "/media/bbb.mp4"})
			So(title, ShouldEqual, "Big Buck Bunny")
		})

		Convey("Should fall back to the file basename", func() {
			title := itemTitle(options.Item{File: "https://cdn.example.com/media/bbb.mp4"})
			So(title, ShouldEqual, "bbb.mp4")
		})
	})
}

func TestMediaTarget(t *testing.T) {
	Convey("mediaTarget", t, func() {
		Convey("Should prefer the item file", func() {
			target := mediaTarget(options.Item{
				File:    "a.mp4",
				Sources: []options.Source{{File: "b.mp4"}},
			})
			So(target, ShouldEqual, "a.mp4")
		})

		Convey("Should fall back to the first source", func() {
			target := mediaTarget(options.Item{Sources: []options.Source{{File: "b.mp4"}}})
			So(target, ShouldEqual, "b.mp4")
		})

		Convey("Should report absence with an empty string", func() {
			So(mediaTarget(options.Item{}), ShouldEqual, "")
		})
	})
}

func TestTranslate(t *testing.T) {
	Convey("translate", t, func() {
		e := New("")

		var fired []string
		e.Events().On(event.All, func(name string, data event.Payload) {
			fired = append(fired, name)
		})

		Convey("Should map pause transitions onto play and pause events", func() {
			e.translate("pause", false)
			e.translate("pause", true)
			So(fired, ShouldResemble, []string{event.Play, event.Pause})
		})

		Convey("Should suppress repeated identical pause states", func() {
			e.translate("pause", false)
			e.translate("pause", false)
			So(fired, ShouldResemble, []string{event.Play})
		})

		Convey("Should carry position and duration on time events", func() {
			var payload event.Payload
			e.Events().On(event.Time, func(name string, data event.Payload) {
				payload = data
			})

			e.translate("duration", 120.0)
			e.translate("time-pos", 42.5)

			So(payload["position"], ShouldEqual, 42.5)
			So(payload["duration"], ShouldEqual, 120.0)
		})

		Convey("Should emit seek and seeked around a seeking flip", func() {
			e.translate("seeking", true)
			e.translate("seeking", false)
			So(fired, ShouldResemble, []string{event.Seek, event.Seeked})
		})

		Convey("Should complete on eof", func() {
			e.translate("eof-reached", true)
			So(fired, ShouldResemble, []string{event.Complete})
			So(e.currentState(), ShouldEqual, event.StateComplete)
		})

		Convey("Should translate volume and mute and speed", func() {
			e.translate("volume", 55.0)
			e.translate("mute", true)
			e.translate("speed", 1.5)
			So(fired, ShouldResemble, []string{event.VolumeSet, event.Mute, event.RateChange})
		})
	})
}
