package query

import (
	"testing"

	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.QueriesRemember, true)
	viper.Set(key.ConsoleSuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given a location history", t, func() {
		loc1 := "/media/clips/sunrise.mp4"
		loc2 := "https://cdn.example.com/feeds/morning.json"

		Convey("When remembering locations", func() {
			So(Remember(loc1, 1), ShouldBeNil)
			So(Remember(loc2, 10), ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear memory cache to force a read from the store
				suggestionCache = make(map[string][]*locationRecord)

				s := SuggestMany("morning")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, loc2)
			})

			Convey("Then the top suggestion is exposed as an option", func() {
				suggestionCache = make(map[string][]*locationRecord)

				So(Suggest("sunrise").MustGet(), ShouldEqual, loc1)
				So(Suggest("nothing-matches-this").IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("It preserves case but trims whitespace", func() {
			So(sanitize("  /Media/Clip.MP4  "), ShouldEqual, "/Media/Clip.MP4")
		})

		Convey("It caps the suggestion list", func() {
			viper.Set(key.ConsoleSuggestionsCap, 1)
			defer viper.Set(key.ConsoleSuggestionsCap, 0)

			So(Remember("/media/a.mp4", 1), ShouldBeNil)
			So(Remember("/media/b.mp4", 1), ShouldBeNil)
			suggestionCache = make(map[string][]*locationRecord)

			So(len(SuggestMany("media")), ShouldEqual, 1)
		})
	})
}
