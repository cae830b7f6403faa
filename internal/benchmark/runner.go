package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Observer receives the measurement of every case that completes.
type Observer interface {
	ObserveCase(name string, iterations int64, elapsed time.Duration)
}

// Runner times a fixed list of cases one after another and reports them.
type Runner struct {
	Cases      []Case
	Iterations int
	Out        io.Writer
	Logger     *slog.Logger
	Observer   Observer
}

// NewRunner creates a Runner writing its report to out.
func NewRunner(out io.Writer, iterations int, cases ...Case) *Runner {
	return &Runner{
		Cases:      cases,
		Iterations: iterations,
		Out:        out,
		Logger:     slog.Default(),
	}
}

// Run prints the header, times every case strictly in order and prints the
// comparison block. A failing case aborts the run and nothing after it is
// measured or printed.
func (r *Runner) Run() (Run, error) {
	if len(r.Cases) == 0 {
		return Run{}, ErrNoCases
	}
	if r.Iterations < 0 {
		return Run{}, fmt.Errorf("%w: %d", ErrInvalidIterations, r.Iterations)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	run := Run{
		Timestamp: time.Now(),
		Samples:   r.Iterations,
		Results:   make([]Result, 0, len(r.Cases)),
	}

	PrintHeader(r.Out, r.Iterations)
	for _, c := range r.Cases {
		fmt.Fprintf(r.Out, "%s test...\n", c.Title)
		logger.Debug("Timing case", "case", c.Name, "iterations", r.Iterations)

		elapsed, err := TimeCase(c, r.Iterations)
		if err != nil {
			logger.Error("Benchmark case failed", "case", c.Name, "error", err)
			return run, err
		}

		res := newResult(c, r.Iterations, elapsed)
		run.Results = append(run.Results, res)
		logger.Debug("Case finished", "case", c.Name, "seconds", res.Seconds, "ns_per_op", res.NsPerOp)

		if r.Observer != nil {
			r.Observer.ObserveCase(c.Name, res.Iterations, elapsed)
		}
	}

	PrintComparison(r.Out, r.Cases, run.Results)
	return run, nil
}
