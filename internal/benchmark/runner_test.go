package benchmark

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticCase(name, title, label string, op Op) Case {
	return Case{
		Name:  name,
		Title: title,
		Label: label,
		Setup: func() (Op, error) { return op, nil },
	}
}

func noop() error { return nil }

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

type recordingObserver struct {
	names      []string
	iterations []int64
}

func (o *recordingObserver) ObserveCase(name string, iterations int64, elapsed time.Duration) {
	o.names = append(o.names, name)
	o.iterations = append(o.iterations, iterations)
}

func TestRunner_OutputOrder(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, 1,
		staticCase("tensor", "Pytorch", "Pytorch", noop),
		staticCase("bijector", "Tensorflow", "Tf", noop),
	)

	run, err := r.Run()
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 6)
	assert.Equal(t, "Analysing the speed of performing a action/distribution squashing operation for 1 times...", lines[0])
	assert.Equal(t, "Pytorch test...", lines[1])
	assert.Equal(t, "Tensorflow test...", lines[2])
	assert.Equal(t, "Compare Pytorch/Tensorflow log_prob + squash method speed:", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "- Pytorch log_prob squash time: "), lines[4])
	assert.True(t, strings.HasSuffix(lines[4], " s"), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "- Tf log_prob squash time: "), lines[5])

	require.Len(t, run.Results, 2)
	assert.Equal(t, "tensor", run.Results[0].Name)
	assert.Equal(t, "bijector", run.Results[1].Name)
	assert.Equal(t, 1, run.Samples)
}

func TestRunner_ZeroIterations(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, 0,
		staticCase("tensor", "Pytorch", "Pytorch", noop),
		staticCase("bijector", "Tensorflow", "Tf", noop),
	)

	run, err := r.Run()
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 6)
	assert.Equal(t, "- Pytorch log_prob squash time: 0 s", lines[4])
	assert.Equal(t, "- Tf log_prob squash time: 0 s", lines[5])
	for _, res := range run.Results {
		assert.Zero(t, res.NsPerOp)
	}
}

func TestRunner_CasesAreIndependent(t *testing.T) {
	sleepOp := func(d time.Duration) Op {
		return func() error {
			time.Sleep(d)
			return nil
		}
	}
	const iterations = 5
	fixed := sleepOp(time.Millisecond)

	timeB := func(a Op) (Result, Result) {
		var buf bytes.Buffer
		r := NewRunner(&buf, iterations,
			staticCase("tensor", "Pytorch", "Pytorch", a),
			staticCase("bijector", "Tensorflow", "Tf", fixed),
		)
		run, err := r.Run()
		require.NoError(t, err)
		resA, ok := run.Result("tensor")
		require.True(t, ok)
		resB, ok := run.Result("bijector")
		require.True(t, ok)
		return resA, resB
	}

	_, baseline := timeB(noop)
	slowA, slowed := timeB(sleepOp(20 * time.Millisecond))

	// A adds at least 100ms; B must not pick up any of it.
	require.GreaterOrEqual(t, slowA.Seconds, 0.1)
	assert.GreaterOrEqual(t, baseline.Seconds, 0.005)
	assert.GreaterOrEqual(t, slowed.Seconds, 0.005)
	assert.InDelta(t, baseline.Seconds, slowed.Seconds, 0.05)
}

func TestRunner_FailureStopsRun(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	r := NewRunner(&buf, 2,
		staticCase("tensor", "Pytorch", "Pytorch", func() error { return boom }),
		staticCase("bijector", "Tensorflow", "Tf", noop),
	)

	_, err := r.Run()
	assert.ErrorIs(t, err, boom)

	lines := outputLines(&buf)
	assert.Equal(t, []string{
		"Analysing the speed of performing a action/distribution squashing operation for 2 times...",
		"Pytorch test...",
	}, lines)
}

func TestRunner_Observer(t *testing.T) {
	obs := &recordingObserver{}
	var buf bytes.Buffer
	r := NewRunner(&buf, 5,
		staticCase("tensor", "Pytorch", "Pytorch", noop),
		staticCase("bijector", "Tensorflow", "Tf", noop),
	)
	r.Observer = obs

	_, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"tensor", "bijector"}, obs.names)
	assert.Equal(t, []int64{5, 5}, obs.iterations)
}

func TestRunner_Validation(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewRunner(&buf, 1).Run()
	assert.ErrorIs(t, err, ErrNoCases)

	_, err = NewRunner(&buf, -5, staticCase("a", "A", "A", noop)).Run()
	assert.ErrorIs(t, err, ErrInvalidIterations)
}
