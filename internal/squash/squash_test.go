package squash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"squashbench/internal/benchmark"
	"squashbench/internal/bijector"
)

func smallConfig(seed uint64) Config {
	return Config{BatchSize: 8, ActionDim: 3, Seed: seed}
}

func assertFinite(t *testing.T, values []float64) {
	t.Helper()
	for i, v := range values {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "value %d is %v", i, v)
	}
}

func TestUniformBatch(t *testing.T) {
	u := UniformBatch(smallConfig(1).newRand(), 4, 3)
	r, c := u.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.GreaterOrEqual(t, u.At(i, j), 0.0)
			assert.Less(t, u.At(i, j), 1.0)
		}
	}
}

func TestTensorBackend(t *testing.T) {
	b, err := NewTensorBackend(smallConfig(7))
	require.NoError(t, err)

	lp, err := b.LogProb()
	require.NoError(t, err)
	assert.Len(t, lp, 8)
	assertFinite(t, lp)

	// A fresh batch is drawn each call.
	next, err := b.LogProb()
	require.NoError(t, err)
	assert.NotEqual(t, lp, next)
}

func TestTensorLogProb_Formula(t *testing.T) {
	mu := mat.NewDense(1, 2, []float64{0, 0})
	std := mat.NewDense(1, 2, []float64{1, 1})
	u := mat.NewDense(1, 2, []float64{0.5, 0.2})

	lp, err := TensorLogProb(mu, std, u)
	require.NoError(t, err)

	var want float64
	for _, v := range []float64{0.5, 0.2} {
		a := math.Tanh(v)
		want += -0.5*a*a - 0.5*math.Log(2*math.Pi)
		want -= 2 * (math.Ln2 - a - math.Log1p(math.Exp(-2*a)))
	}
	assert.InDelta(t, want, lp[0], 1e-12)
}

func TestTensorLogProb_ShapeMismatch(t *testing.T) {
	mu := mat.NewDense(2, 3, nil)
	std := mat.NewDense(2, 3, nil)
	u := mat.NewDense(2, 2, nil)

	_, err := TensorLogProb(mu, std, u)
	assert.ErrorIs(t, err, bijector.ErrShape)
}

func TestBijectorBackend(t *testing.T) {
	b, err := NewBijectorBackend(smallConfig(7))
	require.NoError(t, err)

	lp, err := b.LogProb()
	require.NoError(t, err)
	assert.Len(t, lp, 8)
	assertFinite(t, lp)
}

func TestBackends_SeededDeterminism(t *testing.T) {
	a1, err := NewTensorBackend(smallConfig(42))
	require.NoError(t, err)
	a2, err := NewTensorBackend(smallConfig(42))
	require.NoError(t, err)

	lp1, err := a1.LogProb()
	require.NoError(t, err)
	lp2, err := a2.LogProb()
	require.NoError(t, err)
	assert.Equal(t, lp1, lp2)

	b1, err := NewBijectorBackend(smallConfig(42))
	require.NoError(t, err)
	b2, err := NewBijectorBackend(smallConfig(42))
	require.NoError(t, err)

	lp1, err = b1.LogProb()
	require.NoError(t, err)
	lp2, err = b2.LogProb()
	require.NoError(t, err)
	assert.Equal(t, lp1, lp2)
}

func TestBijectorLogProb_MatchesReference(t *testing.T) {
	cfg := smallConfig(3)
	b, err := NewBijectorBackend(cfg)
	require.NoError(t, err)
	u := UniformBatch(cfg.newRand(), cfg.BatchSize, cfg.ActionDim)

	got, err := BijectorLogProb(b.mu, b.std, b.loc, b.scale, u)
	require.NoError(t, err)
	want, err := ReferenceLogProb(b.mu, b.std, u)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-9)
}

func TestBijectorLogProb_ShapeMismatch(t *testing.T) {
	mu := mat.NewDense(2, 3, nil)
	std := filled(2, 3, 1)
	eps := mat.NewDense(4, 3, nil)

	_, err := BijectorLogProb(mu, std, []float64{0, 0, 0}, []float64{1, 1, 1}, eps)
	assert.ErrorIs(t, err, bijector.ErrShape)
}

func TestCrossCheck(t *testing.T) {
	for _, seed := range []uint64{0, 1, 12345} {
		a, err := CrossCheck(Config{BatchSize: 256, ActionDim: 3, Seed: seed})
		require.NoError(t, err)

		assert.True(t, a.OK(), "seed %d: max diff %v", seed, a.MaxAbsDiff)
		assert.Len(t, a.Bijector, 256)
		// The timed tensor formula is evaluated at the squashed action, so it
		// does not agree with the other two.
		assert.Greater(t, a.AsWrittenGap, 1e-6)
	}
}

func TestConfigValidation(t *testing.T) {
	_, err := NewTensorBackend(Config{BatchSize: 0, ActionDim: 3})
	assert.ErrorContains(t, err, "batch size")

	_, err = NewBijectorBackend(Config{BatchSize: 4, ActionDim: -1})
	assert.ErrorContains(t, err, "action dim")

	_, err = CrossCheck(Config{})
	assert.Error(t, err)
}

func TestCases(t *testing.T) {
	cases := Cases(DefaultConfig())
	require.Len(t, cases, 2)
	assert.Equal(t, TensorCaseName, cases[0].Name)
	assert.Equal(t, "Pytorch", cases[0].Title)
	assert.Equal(t, BijectorCaseName, cases[1].Name)
	assert.Equal(t, "Tensorflow", cases[1].Title)
	assert.Equal(t, "Tf", cases[1].Label)

	for _, c := range cases {
		elapsed, err := benchmark.TimeCase(c, 3)
		require.NoError(t, err, c.Name)
		assert.GreaterOrEqual(t, elapsed.Seconds(), 0.0)
	}
}

func TestCases_SetupError(t *testing.T) {
	_, err := benchmark.TimeCase(TensorCase(Config{}), 1)
	assert.ErrorContains(t, err, "setup tensor")

	_, err = benchmark.TimeCase(BijectorCase(Config{}), 1)
	assert.ErrorContains(t, err, "setup bijector")
}

func BenchmarkTensorLogProb(b *testing.B) {
	backend, err := NewTensorBackend(DefaultConfig())
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.LogProb(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBijectorLogProb(b *testing.B) {
	backend, err := NewBijectorBackend(DefaultConfig())
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.LogProb(); err != nil {
			b.Fatal(err)
		}
	}
}
