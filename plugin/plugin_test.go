package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playman-cli/playman/event"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeApi struct {
	bus   *event.Bus
	calls []string
	args  [][]any
}

func newFakeApi() *fakeApi {
	return &fakeApi{bus: event.NewBus()}
}

func (f *fakeApi) ID() string { return "player-1" }

func (f *fakeApi) OnEvent(name string, fn event.Handler) int {
	return f.bus.On(name, fn)
}

func (f *fakeApi) OffEvent(name string, id int) {
	f.bus.Off(name, id)
}

func (f *fakeApi) CallInternal(name string, args ...any) any {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == "getVolume" {
		return 75
	}
	return nil
}

func (f *fakeApi) Trigger(name string, data event.Payload) {
	f.bus.Trigger(name, data)
}

func TestRegister(t *testing.T) {
	Convey("Register", t, func() {
		ctor := func(cfg map[string]any) (Plugin, error) { return nil, nil }

		Convey("Should accept a plugin without a version requirement", func() {
			So(Register("bare", "", ctor), ShouldBeNil)
			_, ok := Get("bare")
			So(ok, ShouldBeTrue)
		})

		Convey("Should accept a satisfied minimum version", func() {
			So(Register("old", "0.1.0", ctor), ShouldBeNil)
		})

		Convey("Should reject an unsatisfiable minimum version", func() {
			err := Register("future", "999.0.0", ctor)
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject empty names and nil constructors", func() {
			So(Register("", "", ctor), ShouldNotBeNil)
			So(Register("noctor", "", nil), ShouldNotBeNil)
		})

		Convey("Should replace on duplicate registration", func() {
			So(Register("dup", "", ctor), ShouldBeNil)
			before := len(Registered())
			So(Register("dup", "", ctor), ShouldBeNil)
			So(len(Registered()), ShouldEqual, before)
		})
	})
}

func TestLuaPlugin(t *testing.T) {
	script := `
seen = {}

function addToPlayer(player, config)
    seen.id = player.id
    seen.volume = player.call("getVolume")
    seen.greeting = config.greeting

    player.on("play", function(name, data)
        player.call("setVolume", 50)
    end)
end

function resize(width, height)
    seen.width = width
    seen.height = height
end
`

	dir := t.TempDir()
	path := filepath.Join(dir, "controls.lua")
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	Convey("LuaPlugin", t, func() {
		p, err := LoadLua(path, map[string]any{"greeting": "hello"})
		So(err, ShouldBeNil)
		defer p.Close()

		So(p.Name(), ShouldEqual, "controls")

		api := newFakeApi()
		p.AddToPlayer(api)

		Convey("Should expose id and capability calls to the script", func() {
			So(api.calls, ShouldContain, "getVolume")

			seen := p.state.GetGlobal("seen")
			got, ok := luaToGo(seen).(map[string]any)
			So(ok, ShouldBeTrue)
			So(got["id"], ShouldEqual, "player-1")
			So(got["volume"], ShouldEqual, 75.0)
			So(got["greeting"], ShouldEqual, "hello")
		})

		Convey("Should route player events back into script handlers", func() {
			api.Trigger("play", event.Payload{})
			So(api.calls, ShouldContain, "setVolume")
		})

		Convey("Should forward resize to the optional entry point", func() {
			p.Resize(640, 360)

			got, ok := luaToGo(p.state.GetGlobal("seen")).(map[string]any)
			So(ok, ShouldBeTrue)
			So(got["width"], ShouldEqual, 640.0)
			So(got["height"], ShouldEqual, 360.0)
		})
	})

	Convey("LoadLua", t, func() {
		Convey("Should reject a script missing the entry point", func() {
			bad := filepath.Join(dir, "empty.lua")
			So(os.WriteFile(bad, []byte("x = 1"), 0644), ShouldBeNil)

			_, err := LoadLua(bad, nil)
			So(err, ShouldNotBeNil)
		})
	})
}
