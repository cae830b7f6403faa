package benchmark

import "time"

// Op is one measured unit of work. It is called once per iteration.
type Op func() error

// SetupFunc runs once before timing and returns the Op to measure.
// Anything it allocates (constant batches, closures) is excluded from
// the measurement.
type SetupFunc func() (Op, error)

// Case is a named computation to time.
type Case struct {
	Name  string // stable identifier, used as metric label and history key
	Title string // long label printed in progress lines ("Pytorch")
	Label string // short label printed in the comparison block ("Tf")
	Setup SetupFunc
}

// Result represents the measurement of a single case.
type Result struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Iterations int64   `json:"iterations"`
	Seconds    float64 `json:"seconds"`
	NsPerOp    float64 `json:"ns_per_op"`
}

// Run represents a collection of results from a single execution.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"` // Git commit hash
	Samples   int       `json:"samples"`
	BatchSize int       `json:"batch_size"`
	Results   []Result  `json:"results"`
}

// Result returns the result with the given case name.
func (r Run) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

func newResult(c Case, iterations int, elapsed time.Duration) Result {
	res := Result{
		Name:       c.Name,
		Label:      c.Label,
		Iterations: int64(iterations),
		Seconds:    elapsed.Seconds(),
	}
	if iterations > 0 {
		res.NsPerOp = float64(elapsed.Nanoseconds()) / float64(iterations)
	}
	return res
}
