package qwalk

import (
	"fmt"

	"github.com/pkg/errors"
)

// Borders are the two reflecting walls of the line, both inclusive.
type Borders struct {
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
}

func DefaultBorders() Borders {
	return Borders{Left: -15, Right: 15}
}

func (b Borders) Validate() error {
	if b.Left >= b.Right {
		return errors.Wrapf(ErrInvalidConfig, "left border %d must be below right border %d", b.Left, b.Right)
	}
	return nil
}

func (b Borders) Contains(position int) bool {
	return position >= b.Left && position <= b.Right
}

/*
Shift moves a walker one site in the direction of its coin. A walker that already
sits on the wall it is heading for is pushed back inward instead, so a position
inside the borders never leaves them.
*/
func (b Borders) Shift(coin Coin, position int) int {
	if coin == Up {
		if position == b.Right {
			return position - 1
		}
		return position + 1
	}

	if position == b.Left {
		return position + 1
	}
	return position - 1
}

func (b Borders) String() string {
	return fmt.Sprintf("[%d, %d]", b.Left, b.Right)
}
