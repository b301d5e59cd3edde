package qoe

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimer(t *testing.T) {
	Convey("Given a fresh timer", t, func() {
		timer := NewTimer()

		Convey("Between returns -1 when either tick is absent", func() {
			So(timer.Between(TickSetup, TickReady), ShouldEqual, -1)

			timer.Tick(TickSetup)
			So(timer.Between(TickSetup, TickReady), ShouldEqual, -1)
		})

		Convey("Between measures the interval of two recorded ticks", func() {
			timer.Tick(TickSetup)
			time.Sleep(5 * time.Millisecond)
			timer.Tick(TickReady)

			elapsed := timer.Between(TickSetup, TickReady)
			So(elapsed, ShouldBeGreaterThan, 0)
			So(elapsed, ShouldBeLessThan, 5000)
		})

		Convey("Re-ticking a name overwrites the previous timestamp", func() {
			timer.Tick(TickSetup)
			time.Sleep(2 * time.Millisecond)
			timer.Tick(TickSetup)
			timer.Tick(TickReady)

			So(timer.Between(TickSetup, TickReady), ShouldBeLessThan, 2)
		})

		Convey("Start/End accumulate method counters", func() {
			timer.Start("setup")
			timer.End("setup")
			timer.Start("setup")
			timer.End("setup")

			// End without Start is a no-op.
			timer.End("orphan")

			dump := timer.Dump()
			So(dump["setup"].Calls, ShouldEqual, 2)
			So(dump["setup"].Sum, ShouldBeGreaterThanOrEqualTo, 0)
			So(dump, ShouldNotContainKey, "orphan")
		})
	})
}
