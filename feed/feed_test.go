package feed

import (
	"strings"
	"testing"

	"github.com/playman-cli/playman/options"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should decode a bare item list", func() {
			doc := `[{"file": "a.mp4", "title": "A"}, {"file": "b.mp4"}]`

			decoded, err := Parse(strings.NewReader(doc))
			So(err, ShouldBeNil)

			cfg := options.Normalize(options.Config{"playlist": decoded}, nil)
			items := cfg["playlist"].([]options.Item)
			So(len(items), ShouldEqual, 2)
			So(items[0].Title, ShouldEqual, "A")
			So(items[1].File, ShouldEqual, "b.mp4")
		})

		Convey("Should decode a feed object and surface its metadata", func() {
			doc := `{"title": "Morning Mix", "playlist": [{"file": "a.mp4"}]}`

			decoded, err := Parse(strings.NewReader(doc))
			So(err, ShouldBeNil)

			cfg := options.Normalize(options.Config{"playlist": decoded}, nil)
			items := cfg["playlist"].([]options.Item)
			So(len(items), ShouldEqual, 1)

			feedData, ok := cfg["feedData"].(map[string]any)
			So(ok, ShouldBeTrue)
			So(feedData["title"], ShouldEqual, "Morning Mix")
		})

		Convey("Should reject scalar documents", func() {
			_, err := Parse(strings.NewReader(`42`))
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject malformed JSON", func() {
			_, err := Parse(strings.NewReader(`{"playlist": `))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestIsFeedURL(t *testing.T) {
	Convey("IsFeedURL", t, func() {
		So(IsFeedURL("https://cdn.example.com/feed.json"), ShouldBeTrue)
		So(IsFeedURL("https://cdn.example.com/feed.json?auth=1"), ShouldBeTrue)
		So(IsFeedURL("https://cdn.example.com/feed.rss"), ShouldBeTrue)
		So(IsFeedURL("https://cdn.example.com/clip.mp4"), ShouldBeFalse)
		So(IsFeedURL("/home/user/feed.json"), ShouldBeFalse)
	})
}
