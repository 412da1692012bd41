package qwalk

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBorders(t *testing.T) {
	Convey("Given the default borders", t, func() {
		b := DefaultBorders()
		So(b, ShouldResemble, Borders{Left: -15, Right: 15})
		So(b.Validate(), ShouldBeNil)

		Convey("Away from the walls the coin picks the direction", func() {
			So(b.Shift(Up, 0), ShouldEqual, 1)
			So(b.Shift(Down, 0), ShouldEqual, -1)
			So(b.Shift(Up, -15), ShouldEqual, -14)
			So(b.Shift(Down, 15), ShouldEqual, 14)
		})

		Convey("A walker on the wall it heads for is pushed back", func() {
			So(b.Shift(Up, 15), ShouldEqual, 14)
			So(b.Shift(Down, -15), ShouldEqual, -14)
		})

		Convey("No position inside the borders should leave them", func() {
			for pos := b.Left; pos <= b.Right; pos++ {
				for _, c := range []Coin{Down, Up} {
					So(b.Contains(b.Shift(c, pos)), ShouldBeTrue)
				}
			}
		})

		Convey("It should render as an interval", func() {
			So(b.String(), ShouldEqual, "[-15, 15]")
		})
	})

	Convey("Given the narrowest valid line", t, func() {
		b := Borders{Left: 0, Right: 1}

		So(b.Validate(), ShouldBeNil)
		So(b.Shift(Up, 1), ShouldEqual, 0)
		So(b.Shift(Down, 0), ShouldEqual, 1)
		So(b.Shift(Up, 0), ShouldEqual, 1)
		So(b.Shift(Down, 1), ShouldEqual, 0)
	})

	Convey("Given borders that do not enclose an interval", t, func() {
		for _, b := range []Borders{{Left: 3, Right: 3}, {Left: 5, Right: -5}} {
			err := b.Validate()
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		}
	})
}
