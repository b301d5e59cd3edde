package api

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Registry", t, func() {
		registry := NewRegistry()

		Convey("Order equals creation order minus removed entries", func() {
			a := registry.Register("a")
			b := registry.Register("b")
			c := registry.Register("c")

			registry.Unregister(b.UniqueID())

			all := registry.All()
			So(len(all), ShouldEqual, 2)
			So(all[0], ShouldEqual, a)
			So(all[1], ShouldEqual, c)
		})

		Convey("Unique ids are never reused", func() {
			seen := make(map[int]bool)
			for i := 0; i < 10; i++ {
				p := registry.Register("el")
				So(seen[p.UniqueID()], ShouldBeFalse)
				seen[p.UniqueID()] = true
				registry.Unregister(p.UniqueID())
			}
		})

		Convey("Unregister is idempotent", func() {
			p := registry.Register("once")
			registry.Unregister(p.UniqueID())
			So(func() { registry.Unregister(p.UniqueID()) }, ShouldNotPanic)
			So(registry.Size(), ShouldEqual, 0)
		})

		Convey("Lookup by element id returns the exact instance", func() {
			p := registry.Register("exact")

			got, ok := registry.ByElementID("exact").Get()
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, p)
		})

		Convey("Positional lookup honors registration order", func() {
			first := registry.Register("one")
			second := registry.Register("two")

			So(registry.At(0).MustGet(), ShouldEqual, first)
			So(registry.At(1).MustGet(), ShouldEqual, second)
			So(registry.At(2).IsAbsent(), ShouldBeTrue)
			So(registry.At(-1).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSelectPlayer(t *testing.T) {
	Convey("SelectPlayer", t, func() {
		// The process-wide registry persists across cases; use distinct ids.
		// The no-registration case must run before anything registers.

		Convey("Nil degrades while nothing is registered", func() {
			So(DefaultRegistry().Size(), ShouldEqual, 0)

			p := SelectPlayer(nil)
			So(p.degraded, ShouldBeTrue)
			So(DefaultRegistry().Size(), ShouldEqual, 0)
		})

		Convey("A string resolves an existing player by element id", func() {
			created := SelectPlayer("select-existing")
			resolved := SelectPlayer("select-existing")
			So(resolved, ShouldEqual, created)
		})

		Convey("A string without a match creates a new player bound to it", func() {
			p := SelectPlayer("select-fresh")
			So(p.ID(), ShouldEqual, "select-fresh")
			So(p.UniqueID(), ShouldBeGreaterThan, 0)
		})

		Convey("Nil resolves the first player once one exists", func() {
			first := DefaultRegistry().First().MustGet()
			So(SelectPlayer(nil), ShouldEqual, first)
		})

		Convey("An element reference resolves like its id", func() {
			created := SelectPlayer("select-element")
			So(SelectPlayer(Element{ID: "select-element"}), ShouldEqual, created)
			So(SelectPlayer(&Element{ID: "select-element"}), ShouldEqual, created)
		})

		Convey("A numeric query indexes registration order", func() {
			first := DefaultRegistry().At(0).MustGet()
			So(SelectPlayer(0), ShouldEqual, first)
		})

		Convey("Out-of-range and unresolvable queries degrade", func() {
			So(SelectPlayer(9999).degraded, ShouldBeTrue)
			So(SelectPlayer(struct{}{}).degraded, ShouldBeTrue)
		})
	})
}
