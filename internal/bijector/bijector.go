// Package bijector implements invertible transforms with tractable
// log-Jacobian determinants and the distributions built from them.
//
// All values are batches: a *mat.Dense with one event per row. Log-Jacobian
// terms are reduced over the event axis, so every bijector returns one value
// per row.
package bijector

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShape reports operands whose dimensions cannot be combined.
var ErrShape = errors.New("shape mismatch")

// Bijector is an invertible mapping between batches of events.
type Bijector interface {
	Forward(x *mat.Dense) (*mat.Dense, error)
	Inverse(y *mat.Dense) (*mat.Dense, error)
	// ForwardLogDetJacobian returns log|det J_forward(x)| for each row of x.
	ForwardLogDetJacobian(x *mat.Dense) ([]float64, error)
}

// InverseLogDetJacobian returns log|det J_inverse(y)| for each row of y.
func InverseLogDetJacobian(b Bijector, y *mat.Dense) ([]float64, error) {
	x, err := b.Inverse(y)
	if err != nil {
		return nil, err
	}
	ldj, err := b.ForwardLogDetJacobian(x)
	if err != nil {
		return nil, err
	}
	for i := range ldj {
		ldj[i] = -ldj[i]
	}
	return ldj, nil
}

func shapeError(op string, r1, c1, r2, c2 int) error {
	return fmt.Errorf("%s: %w: %dx%d vs %dx%d", op, ErrShape, r1, c1, r2, c2)
}
