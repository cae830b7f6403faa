package bijector

import "math"

// Softplus computes ln(1 + e^z) without overflowing for large z.
func Softplus(z float64) float64 {
	return math.Max(z, 0) + math.Log1p(math.Exp(-math.Abs(z)))
}

// TanhLogDetJacobian returns log(1 - tanh(x)^2) in the stable form
// 2 * (ln 2 - x - softplus(-2x)).
func TanhLogDetJacobian(x float64) float64 {
	return 2 * (math.Ln2 - x - Softplus(-2*x))
}
