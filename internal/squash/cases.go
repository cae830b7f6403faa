package squash

import "squashbench/internal/benchmark"

const (
	TensorCaseName   = "tensor"
	BijectorCaseName = "bijector"
)

// TensorCase times the manual-correction backend, reported as Pytorch.
func TensorCase(cfg Config) benchmark.Case {
	return benchmark.Case{
		Name:  TensorCaseName,
		Title: "Pytorch",
		Label: "Pytorch",
		Setup: func() (benchmark.Op, error) {
			b, err := NewTensorBackend(cfg)
			if err != nil {
				return nil, err
			}
			return func() error {
				_, err := b.LogProb()
				return err
			}, nil
		},
	}
}

// BijectorCase times the transformed-distribution backend, reported as
// Tensorflow and Tf.
func BijectorCase(cfg Config) benchmark.Case {
	return benchmark.Case{
		Name:  BijectorCaseName,
		Title: "Tensorflow",
		Label: "Tf",
		Setup: func() (benchmark.Op, error) {
			b, err := NewBijectorBackend(cfg)
			if err != nil {
				return nil, err
			}
			return func() error {
				_, err := b.LogProb()
				return err
			}, nil
		},
	}
}

// Cases returns both cases in reporting order.
func Cases(cfg Config) []benchmark.Case {
	return []benchmark.Case{TensorCase(cfg), BijectorCase(cfg)}
}
