package squash

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CrossCheckTolerance bounds the disagreement between the bijector backend
// and the change-of-variables reference.
const CrossCheckTolerance = 1e-9

// Agreement holds the three evaluations of one shared batch.
type Agreement struct {
	Bijector  []float64 // transformed distribution
	Reference []float64 // manual formula at the pre-squash value
	AsWritten []float64 // manual formula at the squashed value, as timed

	MaxAbsDiff   float64 // max |Bijector - Reference|
	AsWrittenGap float64 // max |Bijector - AsWritten|
}

// OK reports whether the bijector backend matches the reference.
func (a Agreement) OK() bool {
	return a.MaxAbsDiff <= CrossCheckTolerance
}

// CrossCheck evaluates one seeded batch through every formula.
func CrossCheck(cfg Config) (Agreement, error) {
	b, err := NewBijectorBackend(cfg)
	if err != nil {
		return Agreement{}, err
	}
	u := UniformBatch(cfg.newRand(), cfg.BatchSize, cfg.ActionDim)

	var a Agreement
	if a.Bijector, err = BijectorLogProb(b.mu, b.std, b.loc, b.scale, u); err != nil {
		return Agreement{}, err
	}
	if a.Reference, err = ReferenceLogProb(b.mu, b.std, u); err != nil {
		return Agreement{}, err
	}
	if a.AsWritten, err = TensorLogProb(b.mu, b.std, u); err != nil {
		return Agreement{}, err
	}

	a.MaxAbsDiff = maxAbsDiff(a.Bijector, a.Reference)
	a.AsWrittenGap = maxAbsDiff(a.Bijector, a.AsWritten)
	return a, nil
}

func maxAbsDiff(a, b []float64) float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	var m float64
	for _, d := range diff {
		m = math.Max(m, math.Abs(d))
	}
	return m
}
