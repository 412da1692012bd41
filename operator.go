package qwalk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

/*
CoinOperator rotates the coin of one basis state into a down and an up part.
Both outputs keep the input position; only coin and amplitude change, and the
squares of the two output amplitudes add up to the square of the input.
*/
type CoinOperator interface {
	Apply(b BasisState) (down, up BasisState)

	// Matrix is the operator on the coin space. Column j is the image of
	// input coin j, row i the amplitude landing on output coin i.
	Matrix() *mat.Dense

	String() string
}

// Unbiased is the Hadamard-like coin.
type Unbiased struct{}

func (Unbiased) Apply(b BasisState) (BasisState, BasisState) {
	h := 1.0 / math.Sqrt(2)

	down := BasisState{Coin: Down, Position: b.Position, Amplitude: b.Amplitude * h}
	up := BasisState{Coin: Up, Position: b.Position, Amplitude: b.Amplitude * h}

	if b.Coin == Up {
		up.Amplitude *= -1
	}

	return down, up
}

func (Unbiased) Matrix() *mat.Dense {
	// H = 1/√2 * [1  1]
	//            [1 -1]
	h := 1.0 / math.Sqrt(2)
	return mat.NewDense(2, 2, []float64{
		h, h,
		h, -h,
	})
}

func (Unbiased) String() string {
	return "unbiased"
}

// Biased is the probability-biased unitary coin, P in [0, 1].
type Biased struct {
	P float64
}

func (op Biased) Apply(b BasisState) (BasisState, BasisState) {
	stay := math.Sqrt(op.P)
	flip := math.Sqrt(1 - op.P)

	if b.Coin == Down {
		return BasisState{Coin: Down, Position: b.Position, Amplitude: b.Amplitude * stay},
			BasisState{Coin: Up, Position: b.Position, Amplitude: b.Amplitude * (-1 * flip)}
	}

	return BasisState{Coin: Down, Position: b.Position, Amplitude: b.Amplitude * flip},
		BasisState{Coin: Up, Position: b.Position, Amplitude: b.Amplitude * stay}
}

func (op Biased) Matrix() *mat.Dense {
	stay := math.Sqrt(op.P)
	flip := math.Sqrt(1 - op.P)
	return mat.NewDense(2, 2, []float64{
		stay, flip,
		-flip, stay,
	})
}

func (op Biased) String() string {
	return fmt.Sprintf("biased(p=%g)", op.P)
}

// IsUnitary reports whether MᵀM is the identity within tol.
func IsUnitary(op CoinOperator, tol float64) bool {
	m := op.Matrix()

	var product mat.Dense
	product.Mul(m.T(), m)

	return mat.EqualApprox(&product, mat.NewDiagDense(2, []float64{1, 1}), tol)
}
