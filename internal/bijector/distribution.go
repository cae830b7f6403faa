package bijector

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Distribution evaluates log-densities for a batch of events.
type Distribution interface {
	EventDim() int
	LogProb(x *mat.Dense) ([]float64, error)
}

// MultivariateNormalDiag is a normal distribution with diagonal covariance.
type MultivariateNormalDiag struct {
	normal *distmv.Normal
}

// NewMultivariateNormalDiag builds the distribution from its location and
// per-dimension standard deviation.
func NewMultivariateNormalDiag(loc, scaleDiag []float64) (*MultivariateNormalDiag, error) {
	if len(loc) == 0 || len(loc) != len(scaleDiag) {
		return nil, fmt.Errorf("normal: %w: loc has %d dims, scale has %d", ErrShape, len(loc), len(scaleDiag))
	}

	sigma := mat.NewSymDense(len(scaleDiag), nil)
	for i, s := range scaleDiag {
		if s <= 0 {
			return nil, fmt.Errorf("normal: scale[%d] must be positive, got %v", i, s)
		}
		sigma.SetSym(i, i, s*s)
	}

	normal, ok := distmv.NewNormal(loc, sigma, nil)
	if !ok {
		return nil, fmt.Errorf("normal: covariance is not positive definite")
	}
	return &MultivariateNormalDiag{normal: normal}, nil
}

func (d *MultivariateNormalDiag) EventDim() int { return d.normal.Dim() }

func (d *MultivariateNormalDiag) LogProb(x *mat.Dense) ([]float64, error) {
	rows, cols := x.Dims()
	if cols != d.EventDim() {
		return nil, shapeError("normal log prob", 1, d.EventDim(), rows, cols)
	}
	lp := make([]float64, rows)
	for i := 0; i < rows; i++ {
		lp[i] = d.normal.LogProb(x.RawRowView(i))
	}
	return lp, nil
}

// Transformed is the distribution of Bijector.Forward(X) for X ~ Base.
type Transformed struct {
	Base     Distribution
	Bijector Bijector
}

func NewTransformed(base Distribution, b Bijector) *Transformed {
	return &Transformed{Base: base, Bijector: b}
}

func (t *Transformed) EventDim() int { return t.Base.EventDim() }

// LogProb applies the change of variables:
// log p(y) = log p_base(x) - log|det J_forward(x)|, x = Inverse(y).
func (t *Transformed) LogProb(y *mat.Dense) ([]float64, error) {
	rows, cols := y.Dims()
	if cols != t.EventDim() {
		return nil, shapeError("transformed log prob", 1, t.EventDim(), rows, cols)
	}

	x, err := t.Bijector.Inverse(y)
	if err != nil {
		return nil, err
	}
	lp, err := t.Base.LogProb(x)
	if err != nil {
		return nil, err
	}
	ldj, err := t.Bijector.ForwardLogDetJacobian(x)
	if err != nil {
		return nil, err
	}
	for i := range lp {
		lp[i] -= ldj[i]
	}
	return lp, nil
}
