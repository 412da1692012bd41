package qwalk

// Coin is the internal two-valued degree of freedom of the walker.
type Coin int

const (
	Down Coin = iota
	Up
)

func (c Coin) String() string {
	switch c {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "?"
	}
}
