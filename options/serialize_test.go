package options

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSerializeScheme(t *testing.T) {
	Convey("Serialize and Deserialize are exact inverses for the documented tags", t, func() {
		So(Deserialize(Serialize(nil)), ShouldBeNil)
		So(Deserialize(Serialize(true)), ShouldEqual, true)
		So(Deserialize(Serialize(false)), ShouldEqual, false)
		So(Deserialize(Serialize(42)), ShouldEqual, 42)
		So(Deserialize(Serialize(1.25)), ShouldEqual, 1.25)
		So(Deserialize(Serialize("plain")), ShouldEqual, "plain")

		structured := map[string]any{"labels": []any{"HD", "SD"}}
		So(Deserialize(Serialize(structured)), ShouldResemble, structured)
	})

	Convey("Deserialize degrades unparseable structured input to the raw string", t, func() {
		So(Deserialize("{not json"), ShouldEqual, "{not json")
	})
}
