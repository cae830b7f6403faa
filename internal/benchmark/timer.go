package benchmark

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidIterations is returned for a negative iteration count.
	ErrInvalidIterations = errors.New("iterations must not be negative")
	// ErrNoCases is returned by a Runner with nothing to run.
	ErrNoCases = errors.New("no benchmark cases configured")
	// ErrNilOp is returned when there is no operation to time.
	ErrNilOp = errors.New("nil op")
)

// clock is the time source for measurements. Tests replace it.
var clock = time.Now

// TimeRepeated calls op exactly iterations times and returns the wall-clock
// duration of the loop. The first failing call stops the loop.
//
// Zero iterations measure nothing and return 0 without calling op.
func TimeRepeated(op Op, iterations int) (time.Duration, error) {
	if op == nil {
		return 0, ErrNilOp
	}
	if iterations < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}
	if iterations == 0 {
		return 0, nil
	}

	start := clock()
	for i := 0; i < iterations; i++ {
		if err := op(); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	elapsed := clock().Sub(start)

	// Monotonic readings never go backwards, but a replaced clock might.
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, nil
}

// TimeCase runs the case setup once and then times the returned Op.
func TimeCase(c Case, iterations int) (time.Duration, error) {
	if c.Setup == nil {
		return 0, fmt.Errorf("case %s has no setup", c.Name)
	}
	op, err := c.Setup()
	if err != nil {
		return 0, fmt.Errorf("setup %s: %w", c.Name, err)
	}

	elapsed, err := TimeRepeated(op, iterations)
	if err != nil {
		return 0, fmt.Errorf("run %s: %w", c.Name, err)
	}
	return elapsed, nil
}
