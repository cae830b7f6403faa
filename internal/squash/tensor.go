package squash

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"squashbench/internal/bijector"
)

// TensorBackend evaluates the squashed log-probability with the manual
// Jacobian correction. mu and std are fixed at construction.
type TensorBackend struct {
	mu, std *mat.Dense
	rng     *rand.Rand
	cfg     Config
}

func NewTensorBackend(cfg Config) (*TensorBackend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &TensorBackend{
		mu:  filled(cfg.BatchSize, cfg.ActionDim, 0),
		std: filled(cfg.BatchSize, cfg.ActionDim, 1),
		rng: cfg.newRand(),
		cfg: cfg,
	}, nil
}

// LogProb draws a fresh uniform batch, squashes it and returns one
// log-probability per row.
func (b *TensorBackend) LogProb() ([]float64, error) {
	u := UniformBatch(b.rng, b.cfg.BatchSize, b.cfg.ActionDim)
	return TensorLogProb(b.mu, b.std, u)
}

// TensorLogProb squashes u with tanh and evaluates the normal log-density
// and the correction at the squashed action a = tanh(u):
//
//	logp = sum_j log N(a_j; mu_j, std_j) - sum_j 2 * (ln 2 - a_j - softplus(-2 a_j))
func TensorLogProb(mu, std, u *mat.Dense) ([]float64, error) {
	var a mat.Dense
	a.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, u)
	return gaussianSquashLogProb(mu, std, &a)
}

// ReferenceLogProb evaluates the same formula at the pre-squash value u, which
// is the change-of-variables log-density of tanh(u).
func ReferenceLogProb(mu, std, u *mat.Dense) ([]float64, error) {
	return gaussianSquashLogProb(mu, std, u)
}

func gaussianSquashLogProb(mu, std, x *mat.Dense) ([]float64, error) {
	rows, cols := x.Dims()
	if r, c := mu.Dims(); r != rows || c != cols {
		return nil, fmt.Errorf("tensor log prob: %w: mu %dx%d vs %dx%d", bijector.ErrShape, r, c, rows, cols)
	}
	if r, c := std.Dims(); r != rows || c != cols {
		return nil, fmt.Errorf("tensor log prob: %w: std %dx%d vs %dx%d", bijector.ErrShape, r, c, rows, cols)
	}

	logp := make([]float64, rows)
	density := make([]float64, cols)
	correction := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := x.At(i, j)
			n := distuv.Normal{Mu: mu.At(i, j), Sigma: std.At(i, j)}
			density[j] = n.LogProb(v)
			correction[j] = bijector.TanhLogDetJacobian(v)
		}
		logp[i] = floats.Sum(density) - floats.Sum(correction)
	}
	return logp, nil
}
