package squash

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"squashbench/internal/bijector"
)

// BijectorBackend evaluates the squashed log-probability through a
// transformed distribution. The bijectors and the base distribution are
// rebuilt on every call.
type BijectorBackend struct {
	mu, std    *mat.Dense
	loc, scale []float64
	rng        *rand.Rand
	cfg        Config
}

func NewBijectorBackend(cfg Config) (*BijectorBackend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	loc := make([]float64, cfg.ActionDim)
	scale := make([]float64, cfg.ActionDim)
	for i := range scale {
		scale[i] = 1
	}
	return &BijectorBackend{
		mu:    filled(cfg.BatchSize, cfg.ActionDim, 0),
		std:   filled(cfg.BatchSize, cfg.ActionDim, 1),
		loc:   loc,
		scale: scale,
		rng:   cfg.newRand(),
		cfg:   cfg,
	}, nil
}

// LogProb draws a fresh uniform batch and returns one log-probability per
// row of the squashed sample.
func (b *BijectorBackend) LogProb() ([]float64, error) {
	eps := UniformBatch(b.rng, b.cfg.BatchSize, b.cfg.ActionDim)
	return BijectorLogProb(b.mu, b.std, b.loc, b.scale, eps)
}

// BijectorLogProb reparameterizes eps with shift(mu) after scale(std),
// squashes it, and evaluates the log-density of the squashed action under
// Chain(squash, affine) applied to a diagonal normal base.
func BijectorLogProb(mu, std *mat.Dense, loc, scale []float64, eps *mat.Dense) ([]float64, error) {
	squash := bijector.Tanh{}
	affine := bijector.NewChain(bijector.NewShift(mu), bijector.NewScale(std))
	base, err := bijector.NewMultivariateNormalDiag(loc, scale)
	if err != nil {
		return nil, err
	}

	raw, err := affine.Forward(eps)
	if err != nil {
		return nil, err
	}
	action, err := squash.Forward(raw)
	if err != nil {
		return nil, err
	}

	dist := bijector.NewTransformed(base, bijector.NewChain(squash, affine))
	return dist.LogProb(action)
}
