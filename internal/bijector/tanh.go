package bijector

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Tanh squashes unbounded values into (-1, 1).
type Tanh struct{}

func (Tanh) Forward(x *mat.Dense) (*mat.Dense, error) {
	var y mat.Dense
	y.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, x)
	return &y, nil
}

// Inverse maps y back with atanh. Values at or beyond ±1 give ±Inf or NaN.
func (Tanh) Inverse(y *mat.Dense) (*mat.Dense, error) {
	var x mat.Dense
	x.Apply(func(_, _ int, v float64) float64 { return math.Atanh(v) }, y)
	return &x, nil
}

func (Tanh) ForwardLogDetJacobian(x *mat.Dense) ([]float64, error) {
	rows, cols := x.Dims()
	ldj := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += TanhLogDetJacobian(x.At(i, j))
		}
		ldj[i] = sum
	}
	return ldj, nil
}
