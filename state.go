package qwalk

import (
	"math"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

/*
BasisState is a single (coin, position) coefficient of the walker's
superposition. Amplitudes are signed reals and carry no probability meaning on
their own; only the square summed over a WalkState does.
*/
type BasisState struct {
	Coin      Coin
	Position  int
	Amplitude float64
}

// Key identifies a basis state inside a WalkState.
type Key struct {
	Coin     Coin
	Position int
}

func (b BasisState) Key() Key {
	return Key{Coin: b.Coin, Position: b.Position}
}

/*
WalkState is the sparse superposition of the walker. Each key holds at most one
amplitude and no key ever holds an amplitude of exactly zero: merges that cancel
out remove the key straight away.

A WalkState is produced once per step and handed on to the next step; the
stepper never writes into the state it reads from.
*/
type WalkState struct {
	amplitudes map[Key]float64
}

func NewWalkState() WalkState {
	return WalkState{amplitudes: make(map[Key]float64)}
}

// InitialWalkState places the walker at start with a down coin and amplitude 1.
func InitialWalkState(start int) WalkState {
	ws := NewWalkState()
	ws.Merge(BasisState{Coin: Down, Position: start, Amplitude: 1.0})
	return ws
}

/*
Merge adds a basis state into the superposition. An absent key is inserted, a
present key takes the sum of both amplitudes, and a key whose sum is exactly
zero is deleted. It reports whether the merge cancelled an existing entry.
*/
func (ws *WalkState) Merge(b BasisState) (cancelled bool) {
	if ws.amplitudes == nil {
		ws.amplitudes = make(map[Key]float64)
	}

	key := b.Key()
	current, ok := ws.amplitudes[key]

	if !ok {
		if b.Amplitude != 0 {
			ws.amplitudes[key] = b.Amplitude
		}
		return false
	}

	sum := current + b.Amplitude
	if sum == 0 {
		delete(ws.amplitudes, key)
		return true
	}

	ws.amplitudes[key] = sum
	return false
}

// Amplitude returns the amplitude stored at (coin, position).
func (ws WalkState) Amplitude(coin Coin, position int) (float64, bool) {
	a, ok := ws.amplitudes[Key{Coin: coin, Position: position}]
	return a, ok
}

func (ws WalkState) Len() int {
	return len(ws.amplitudes)
}

// Keys returns every key ordered by position, then coin.
func (ws WalkState) Keys() []Key {
	keys := make([]Key, 0, len(ws.amplitudes))
	for k := range ws.amplitudes {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Position != keys[j].Position {
			return keys[i].Position < keys[j].Position
		}
		return keys[i].Coin < keys[j].Coin
	})

	return keys
}

// Basis returns the entries as basis states, in Keys order.
func (ws WalkState) Basis() []BasisState {
	keys := ws.Keys()
	out := make([]BasisState, len(keys))

	for i, k := range keys {
		out[i] = BasisState{Coin: k.Coin, Position: k.Position, Amplitude: ws.amplitudes[k]}
	}

	return out
}

// Probabilities returns the squared amplitudes in Keys order.
func (ws WalkState) Probabilities() []float64 {
	keys := ws.Keys()
	probs := make([]float64, len(keys))

	for i, k := range keys {
		a := ws.amplitudes[k]
		probs[i] = a * a
	}

	return probs
}

// Norm is the total probability carried by the state. It starts at 1, but a
// wall folds two incoming keys onto one site, so it drifts once the walker
// reaches a border. Nothing renormalises it.
func (ws WalkState) Norm() float64 {
	return floats.Sum(ws.Probabilities())
}

// PositionDistribution sums the probability of both coin values per position.
func (ws WalkState) PositionDistribution() map[int]float64 {
	dist := make(map[int]float64, len(ws.amplitudes))
	for k, a := range ws.amplitudes {
		dist[k.Position] += a * a
	}
	return dist
}

func (ws WalkState) Clone() WalkState {
	out := WalkState{amplitudes: make(map[Key]float64, len(ws.amplitudes))}
	for k, a := range ws.amplitudes {
		out.amplitudes[k] = a
	}
	return out
}

// Validate checks the structural invariants of the state against borders.
func (ws WalkState) Validate(borders Borders) error {
	for _, b := range ws.Basis() {
		switch {
		case b.Amplitude == 0:
			return errors.Wrapf(ErrInvariant, "zero amplitude at (%s, %d)", b.Coin, b.Position)
		case math.IsNaN(b.Amplitude) || math.IsInf(b.Amplitude, 0):
			return errors.Wrapf(ErrInvariant, "non-finite amplitude %v at (%s, %d)", b.Amplitude, b.Coin, b.Position)
		case !borders.Contains(b.Position):
			return errors.Wrapf(ErrInvariant, "position %d outside %s", b.Position, borders)
		}
	}
	return nil
}

// Dump renders the ordered entries for debug output.
func (ws WalkState) Dump() string {
	return spew.Sdump(ws.Basis())
}
