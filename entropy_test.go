package qwalk

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntropy(t *testing.T) {
	Convey("Given trivial states", t, func() {
		Convey("An empty state should have zero entropy", func() {
			h, err := Entropy(NewWalkState())
			So(err, ShouldBeNil)
			So(h, ShouldEqual, 0.0)
		})

		Convey("A single certain entry should have zero entropy", func() {
			h, err := Entropy(InitialWalkState(3))
			So(err, ShouldBeNil)
			So(h, ShouldEqual, 0.0)
		})
	})

	Convey("Given a uniform spread over four entries", t, func() {
		ws := NewWalkState()
		ws.Merge(BasisState{Coin: Down, Position: -1, Amplitude: 0.5})
		ws.Merge(BasisState{Coin: Up, Position: -1, Amplitude: -0.5})
		ws.Merge(BasisState{Coin: Down, Position: 1, Amplitude: 0.5})
		ws.Merge(BasisState{Coin: Up, Position: 1, Amplitude: 0.5})

		Convey("The entropy should be ln 4 regardless of signs", func() {
			h, err := Entropy(ws)
			So(err, ShouldBeNil)
			So(h, ShouldAlmostEqual, math.Log(4), tolerance)
		})
	})

	Convey("Given an amplitude too small to square", t, func() {
		ws := InitialWalkState(0)
		ws.Merge(BasisState{Coin: Up, Position: 1, Amplitude: 1e-200})

		Convey("The entry should contribute nothing", func() {
			h, err := Entropy(ws)
			So(err, ShouldBeNil)
			So(h, ShouldEqual, 0.0)
		})
	})

	Convey("Given an entry carrying more than unit probability", t, func() {
		ws := NewWalkState()
		ws.Merge(BasisState{Coin: Down, Position: 0, Amplitude: 1.5})
		ws.Merge(BasisState{Coin: Up, Position: 0, Amplitude: 0.5})

		Convey("Its negative term should be kept", func() {
			h, err := Entropy(ws)
			So(err, ShouldBeNil)
			So(h, ShouldAlmostEqual, -(2.25*math.Log(2.25) + 0.25*math.Log(0.25)), tolerance)
			So(h, ShouldBeLessThan, 0.0)
		})
	})

	Convey("Given states that break the invariants", t, func() {
		Convey("A NaN amplitude should fail loudly", func() {
			ws := InitialWalkState(0)
			ws.Merge(BasisState{Coin: Up, Position: 1, Amplitude: math.NaN()})

			_, err := Entropy(ws)
			So(errors.Is(err, ErrInvariant), ShouldBeTrue)
		})

		Convey("An infinite amplitude should fail loudly", func() {
			ws := InitialWalkState(0)
			ws.Merge(BasisState{Coin: Up, Position: 1, Amplitude: math.Inf(-1)})

			_, err := Entropy(ws)
			So(errors.Is(err, ErrInvariant), ShouldBeTrue)
		})

		Convey("A zero amplitude slipped into storage should fail loudly", func() {
			ws := WalkState{amplitudes: map[Key]float64{
				{Coin: Down, Position: 0}: 1,
				{Coin: Up, Position: 0}:   0,
			}}

			_, err := Entropy(ws)
			So(errors.Is(err, ErrInvariant), ShouldBeTrue)
		})
	})
}
