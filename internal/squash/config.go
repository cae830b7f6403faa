package squash

import (
	"fmt"
	"math/rand/v2"
)

const (
	DefaultBatchSize = 256
	DefaultActionDim = 3
)

// Config sizes the batches both backends work on.
type Config struct {
	BatchSize int
	ActionDim int
	Seed      uint64
}

// DefaultConfig is a batch of 256 actions of 3 dims.
func DefaultConfig() Config {
	return Config{BatchSize: DefaultBatchSize, ActionDim: DefaultActionDim}
}

func (c Config) validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.ActionDim <= 0 {
		return fmt.Errorf("action dim must be positive, got %d", c.ActionDim)
	}
	return nil
}

func (c Config) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}
