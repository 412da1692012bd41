package qwalk

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

const roundingSlack = 1e-12

/*
Entropy returns the Shannon entropy -Σ p·ln(p) of the (coin, position)
distribution, with p the squared amplitude of each entry. An empty state has
entropy 0.

A zero or non-finite amplitude cannot appear in a well-formed state and is
reported as ErrInvariant rather than folded into the sum. An amplitude whose
square underflows to 0 contributes nothing.

The state is not renormalised after wall reflections, so an entry can carry
p > 1. Such entries add negative terms and the result is returned as is; it is
only guaranteed non-negative while every p <= 1.
*/
func Entropy(ws WalkState) (float64, error) {
	probs := make([]float64, 0, ws.Len())
	peak := 0.0

	for _, b := range ws.Basis() {
		if b.Amplitude == 0 || math.IsNaN(b.Amplitude) || math.IsInf(b.Amplitude, 0) {
			return 0, errors.Wrapf(ErrInvariant, "amplitude %v at (%s, %d)", b.Amplitude, b.Coin, b.Position)
		}

		if p := b.Amplitude * b.Amplitude; p != 0 {
			probs = append(probs, p)
			peak = math.Max(peak, p)
		}
	}

	if len(probs) == 0 {
		return 0, nil
	}

	h := stat.Entropy(probs)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, errors.Wrapf(ErrInvariant, "entropy evaluated to %v", h)
	}

	// A single certain entry can come out as p = 1 + ε.
	if peak <= 1+roundingSlack && h <= 0 && h > -roundingSlack {
		h = 0
	}

	return h, nil
}
