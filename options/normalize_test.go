package options

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMergePrecedence(t *testing.T) {
	Convey("Given values on every merge layer", t, func() {
		ResetDefaults()
		defer ResetDefaults()

		Convey("Explicit options beat persisted, persisted beat injected, injected beat built-in", func() {
			SetDefault("volume", 50)

			cfg := Normalize(Config{"mute": true}, map[string]string{"volume": "75", "mute": "false"})

			So(cfg["volume"], ShouldEqual, 75)
			So(cfg["mute"], ShouldEqual, true)
		})

		Convey("Persisted strings are deserialized to their natural type", func() {
			cfg := Normalize(nil, map[string]string{
				"autostart": "true",
				"volume":    "42",
				"height":    "56.5",
				"hlslabels": `{"360":"SD"}`,
			})

			So(cfg["autostart"], ShouldEqual, true)
			So(cfg["volume"], ShouldEqual, 42)
			So(cfg["height"], ShouldEqual, 56.5)
			So(cfg["hlslabels"], ShouldResemble, map[string]any{"360": "SD"})
		})

		Convey("Built-in defaults survive when no layer overrides them", func() {
			cfg := Normalize(nil, nil)

			So(cfg["controls"], ShouldEqual, true)
			So(cfg["stretching"], ShouldEqual, "uniform")
			So(cfg["volume"], ShouldEqual, 90)
		})
	})
}

func TestLocalizationMerge(t *testing.T) {
	Convey("Given localization overrides on two layers", t, func() {
		ResetDefaults()
		defer ResetDefaults()

		SetDefault("localization", map[string]string{"play": "Abspielen", "pause": "Anhalten"})

		cfg := Normalize(Config{
			"localization": map[string]any{"play": "Jouer"},
		}, nil)

		table := cfg["localization"].(map[string]string)

		Convey("Explicit strings win", func() {
			So(table["play"], ShouldEqual, "Jouer")
		})

		Convey("Process defaults fill what the explicit layer omitted", func() {
			So(table["pause"], ShouldEqual, "Anhalten")
		})

		Convey("Built-in strings fill everything else", func() {
			So(table["mute"], ShouldEqual, "Mute")
		})
	})
}

func TestAspectRatio(t *testing.T) {
	Convey("Aspect ratio evaluation", t, func() {
		ResetDefaults()

		Convey("A non-percentage width forces the ratio to unset", func() {
			cfg := Normalize(Config{"width": "400px", "aspectratio": "16:9"}, nil)

			So(cfg["width"], ShouldEqual, 400)
			So(cfg, ShouldNotContainKey, "aspectratio")
		})

		Convey("A W:H ratio with percentage width converts to a percentage", func() {
			cfg := Normalize(Config{"width": "50%", "aspectratio": "16:9"}, nil)
			So(cfg["aspectratio"], ShouldEqual, "56.25%")
		})

		Convey("A bare percentage ratio passes through unchanged", func() {
			cfg := Normalize(Config{"width": "100%", "aspectratio": "75%"}, nil)
			So(cfg["aspectratio"], ShouldEqual, "75%")
		})

		Convey("Zero or negative components yield unset", func() {
			cfg := Normalize(Config{"width": "100%", "aspectratio": "0:9"}, nil)
			So(cfg, ShouldNotContainKey, "aspectratio")

			cfg = Normalize(Config{"width": "100%", "aspectratio": "16:-9"}, nil)
			So(cfg, ShouldNotContainKey, "aspectratio")
		})

		Convey("Malformed ratios yield unset", func() {
			for _, bad := range []any{"16-9", "16:9:4", 1.78, true} {
				cfg := Normalize(Config{"width": "100%", "aspectratio": bad}, nil)
				So(cfg, ShouldNotContainKey, "aspectratio")
			}
		})
	})
}

func TestUnitStripping(t *testing.T) {
	Convey("Width and height units", t, func() {
		ResetDefaults()

		Convey("A trailing px is stripped to a number", func() {
			cfg := Normalize(Config{"width": "640px", "height": "360px"}, nil)
			So(cfg["width"], ShouldEqual, 640)
			So(cfg["height"], ShouldEqual, 360)
		})

		Convey("Percentage strings and bare numbers pass through", func() {
			cfg := Normalize(Config{"width": "50%", "height": 480}, nil)
			So(cfg["width"], ShouldEqual, "50%")
			So(cfg["height"], ShouldEqual, 480)
		})
	})
}

func TestPlaybackRateControls(t *testing.T) {
	Convey("Playback rate controls resolution", t, func() {
		ResetDefaults()

		Convey("A truthy boolean substitutes the default rate list", func() {
			cfg := Normalize(Config{"playbackRateControls": true}, nil)

			So(cfg["playbackRateControls"], ShouldResemble, DefaultRates)
			So(cfg["playbackRates"], ShouldResemble, DefaultRates)
		})

		Convey("Out-of-range entries are dropped and the list mirrored", func() {
			cfg := Normalize(Config{"playbackRateControls": []any{0.1, 1, 10, 2}}, nil)

			So(cfg["playbackRateControls"], ShouldResemble, []float64{1, 2})
			So(cfg["playbackRates"], ShouldResemble, []float64{1, 2})
		})

		Convey("Filtering keeps the caller's ordering", func() {
			cfg := Normalize(Config{"playbackRateControls": []any{2, 0.5, 1, 0.5}}, nil)

			So(cfg["playbackRateControls"], ShouldResemble, []float64{2, 0.5, 1})
			So(cfg["playbackRates"], ShouldResemble, []float64{2, 0.5, 1})
		})

		Convey("An entirely out-of-range list disables the feature", func() {
			cfg := Normalize(Config{"playbackRateControls": []any{0.1, 10}}, nil)

			So(cfg["playbackRateControls"], ShouldEqual, false)
			So(cfg, ShouldNotContainKey, "playbackRates")
		})

		Convey("Any other input form disables the feature", func() {
			cfg := Normalize(Config{"playbackRateControls": "yes"}, nil)
			So(cfg["playbackRateControls"], ShouldEqual, false)
		})

		Convey("Default rate survives only when present in the enabled list", func() {
			cfg := Normalize(Config{
				"playbackRateControls": []any{0.5, 1.5},
				"defaultPlaybackRate":  1.5,
			}, nil)
			So(cfg["defaultPlaybackRate"], ShouldEqual, 1.5)

			cfg = Normalize(Config{
				"playbackRateControls": []any{0.5, 1.5},
				"defaultPlaybackRate":  2.0,
			}, nil)
			So(cfg["defaultPlaybackRate"], ShouldEqual, 1.0)

			cfg = Normalize(Config{"defaultPlaybackRate": 2.0}, nil)
			So(cfg["defaultPlaybackRate"], ShouldEqual, 1.0)
		})
	})
}

func TestPlaylistResolution(t *testing.T) {
	Convey("Playlist resolution", t, func() {
		ResetDefaults()

		Convey("An empty config yields a single synthesized item, never an empty list", func() {
			cfg := Normalize(nil, nil)

			playlist := cfg["playlist"].([]Item)
			So(playlist, ShouldHaveLength, 1)
		})

		Convey("Allow-listed top-level fields flow into the synthesized item", func() {
			cfg := Normalize(Config{
				"title":   "Big Buck Bunny",
				"file":    "bbb.mp4",
				"mediaid": "bbb-1",
				"tracks":  []any{map[string]any{"file": "bbb.vtt", "kind": "captions"}},
			}, nil)

			playlist := cfg["playlist"].([]Item)
			So(playlist, ShouldHaveLength, 1)
			So(playlist[0].Title, ShouldEqual, "Big Buck Bunny")
			So(playlist[0].File, ShouldEqual, "bbb.mp4")
			So(playlist[0].MediaID, ShouldEqual, "bbb-1")
			So(playlist[0].Tracks, ShouldHaveLength, 1)
			So(playlist[0].Tracks[0].Kind, ShouldEqual, "captions")
		})

		Convey("A supplied item list is converted entry by entry", func() {
			cfg := Normalize(Config{
				"playlist": []any{
					map[string]any{"file": "a.mp4", "title": "A"},
					map[string]any{"file": "b.mp4"},
				},
			}, nil)

			playlist := cfg["playlist"].([]Item)
			So(playlist, ShouldHaveLength, 2)
			So(playlist[0].Title, ShouldEqual, "A")
			So(playlist[1].File, ShouldEqual, "b.mp4")
		})

		Convey("A feed object is split into feedData and a lifted playlist", func() {
			cfg := Normalize(Config{
				"playlist": map[string]any{
					"title":    "Feed",
					"kind":     "links",
					"playlist": []any{map[string]any{"file": "x.mp4"}},
				},
			}, nil)

			playlist := cfg["playlist"].([]Item)
			So(playlist, ShouldHaveLength, 1)
			So(playlist[0].File, ShouldEqual, "x.mp4")

			feed := cfg["feedData"].(map[string]any)
			So(feed["title"], ShouldEqual, "Feed")
		})

		Convey("An empty supplied playlist degrades to synthesis", func() {
			cfg := Normalize(Config{"playlist": []any{}, "file": "solo.mp4"}, nil)

			playlist := cfg["playlist"].([]Item)
			So(playlist, ShouldHaveLength, 1)
			So(playlist[0].File, ShouldEqual, "solo.mp4")
		})
	})
}

func TestSkin(t *testing.T) {
	Convey("Skin handling", t, func() {
		ResetDefaults()

		Convey("A structured skin unpacks into top-level fields", func() {
			cfg := Normalize(Config{
				"skin": map[string]any{
					"name":       "glow",
					"url":        "https://cdn.example.com/glow.css",
					"inactive":   "#cccccc",
					"active":     "#ff0000",
					"background": "#000000",
				},
			}, nil)

			So(cfg["skin"], ShouldEqual, "glow")
			So(cfg["skinUrl"], ShouldEqual, "https://cdn.example.com/glow.css")
			So(cfg["skinColorInactive"], ShouldEqual, "#cccccc")
			So(cfg["skinColorActive"], ShouldEqual, "#ff0000")
			So(cfg["skinColorBackground"], ShouldEqual, "#000000")
		})

		Convey("A structured skin without a usable name falls back to the default", func() {
			cfg := Normalize(Config{"skin": map[string]any{"url": "u.css"}}, nil)
			So(cfg["skin"], ShouldEqual, DefaultSkin)
		})

		Convey("A legacy markup skin reference is stripped of its extension", func() {
			cfg := Normalize(Config{"skin": "https://cdn.example.com/skins/bekle.xml"}, nil)
			So(cfg["skin"], ShouldEqual, "bekle")
		})

		Convey("A bare skin name passes through", func() {
			cfg := Normalize(Config{"skin": "glow"}, nil)
			So(cfg["skin"], ShouldEqual, "glow")
		})
	})
}

func TestBaseAndAssets(t *testing.T) {
	Convey("Base URL and asset derivation", t, func() {
		ResetDefaults()
		SetLoadOrigin("https://cdn.example.com/playman")
		defer SetLoadOrigin("")

		Convey("The base always gets a trailing slash", func() {
			cfg := Normalize(Config{"base": "https://assets.example.com/p"}, nil)
			So(cfg["base"], ShouldEqual, "https://assets.example.com/p/")
		})

		Convey("An empty base falls back to the load origin", func() {
			cfg := Normalize(nil, nil)
			So(cfg["base"], ShouldEqual, "https://cdn.example.com/playman/")
		})

		Convey("A '.' base resolves to the executable directory", func() {
			cfg := Normalize(Config{"base": "."}, nil)
			So(cfg["base"], ShouldEqual, ExecDir()+"/")
		})

		Convey("Asset URLs derive from the base unless overridden", func() {
			cfg := Normalize(nil, nil)
			So(cfg["engineUrl"], ShouldEqual, "https://cdn.example.com/playman/engine/")
			So(cfg["providersUrl"], ShouldEqual, "https://cdn.example.com/playman/providers/")

			cfg = Normalize(Config{"engineUrl": "https://other.example.com/engine/"}, nil)
			So(cfg["engineUrl"], ShouldEqual, "https://other.example.com/engine/")
		})

		Convey("A plain-HTTP load origin forces asset URLs to the non-secure scheme", func() {
			SetLoadOrigin("http://intranet.example.com/playman")

			cfg := Normalize(Config{"engineUrl": "https://cdn.example.com/engine/"}, nil)
			So(cfg["engineUrl"], ShouldEqual, "http://cdn.example.com/engine/")
			So(cfg["providersUrl"], ShouldEqual, "http://intranet.example.com/playman/providers/")
		})
	})
}

func TestQualityLabels(t *testing.T) {
	Convey("Quality labels default from the legacy alias", t, func() {
		ResetDefaults()

		labels := map[string]any{"2500": "HD"}

		cfg := Normalize(Config{"hlslabels": labels}, nil)
		So(cfg["qualityLabels"], ShouldResemble, labels)

		explicit := map[string]any{"2500": "High"}
		cfg = Normalize(Config{"hlslabels": labels, "qualityLabels": explicit}, nil)
		So(cfg["qualityLabels"], ShouldResemble, explicit)
	})
}
