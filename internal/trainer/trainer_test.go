package trainer_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dualfit/internal/cost"
	"github.com/born-ml/dualfit/internal/dual"
	"github.com/born-ml/dualfit/internal/grad"
	"github.com/born-ml/dualfit/internal/nn"
	"github.com/born-ml/dualfit/internal/parallel"
	"github.com/born-ml/dualfit/internal/trainer"
)

func quiet() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func sequential() trainer.Config {
	return trainer.Config{
		Parallel: parallel.Config{Enabled: false, NumWorkers: 1},
		Seed:     1,
		Logger:   quiet(),
	}
}

// target200 asks the identity model to output 200.
var target200 = cost.Dataset{{Input: []float64{0}, Output: []float64{200}}}

func TestStep_IdentityConvergesTo200(t *testing.T) {
	for _, backend := range []grad.Backend{grad.DenseBackend{}, grad.SparseBackend{}, grad.NewHybridBackend(grad.AutoCriticality)} {
		cfg := sequential()
		cfg.Backend = backend
		tr := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, cfg)

		steps := 0
		for tr.Step(target200) {
			steps++
			require.Less(t, steps, 100, "did not plateau")
			assert.Equal(t, trainer.Accepted, tr.State())
		}

		assert.Equal(t, 8, steps, "%s", backend.Kind())
		assert.Equal(t, []float64{200}, tr.Params())
		assert.Equal(t, trainer.Plateaued, tr.State())
		c, ok := tr.LastCost()
		assert.True(t, ok)
		assert.Equal(t, 0.0, c)
		tr.Close()
	}
}

func TestStep_AcceptedTrajectory(t *testing.T) {
	tr := trainer.New(1, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer tr.Close()

	var got []float64
	for tr.Step(target200) {
		got = append(got, tr.Params()[0])
	}
	assert.Equal(t, []float64{1, 5, 21, 85, 213, 197, 201, 200}, got)
}

func TestStep_FactorCarried(t *testing.T) {
	tr := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, sequential())
	defer tr.Close()

	assert.Equal(t, trainer.Idle, tr.State())
	assert.Equal(t, 1.0, tr.Factor())

	require.True(t, tr.Step(target200))
	assert.Equal(t, 4.0, tr.Factor())
	require.True(t, tr.Step(target200))
	assert.Equal(t, 16.0, tr.Factor())
}

func TestStep_PlateauLeavesParamsUnchanged(t *testing.T) {
	tr := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, sequential())
	defer tr.Close()
	require.NoError(t, tr.SetParams([]float64{200}))

	assert.False(t, tr.Step(target200))
	assert.Equal(t, []float64{200}, tr.Params())
	assert.Equal(t, trainer.Plateaued, tr.State())
	assert.Equal(t, 1.0, tr.Factor(), "factor is reset on plateau")
}

func TestStep_VanishingGradientPlateaus(t *testing.T) {
	// A constant model has no gradient at all.
	constant := func(_ []dual.Dual, _ []float64, _ struct{}) []dual.Dual {
		return []dual.Dual{dual.New(3)}
	}
	tr := trainer.New(2, constant, nil, struct{}{}, sequential())
	defer tr.Close()

	assert.False(t, tr.Step(target200))
	assert.Equal(t, []float64{0, 0}, tr.Params())
	c, ok := tr.LastCost()
	assert.True(t, ok)
	assert.Equal(t, 197.0, c)
}

func TestStep_PolynomialFit(t *testing.T) {
	want := []float64{0.5, -1, 2}
	data := cost.Sample(func(x float64) float64 { return nn.PolynomialValue(want, x) }, -1, 1, 41)

	cfg := sequential()
	cfg.Cost = cost.L2{}
	cfg.Parallel = parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4}
	tr := trainer.New(len(want), nn.Polynomial[dual.Dual], nn.Polynomial[dual.Float], struct{}{}, cfg)
	defer tr.Close()

	start := tr.Cost(data)
	for i := 0; i < 2000 && tr.Step(data); i++ {
	}

	assert.Less(t, tr.Cost(data), start*1e-3)
	assert.InDeltaSlice(t, want, tr.Params(), 0.1)
	assert.InDelta(t, nn.PolynomialValue(want, 0.3), tr.Eval([]float64{0.3})[0], 0.1)
}

func TestStep_InjectedPoolNotClosed(t *testing.T) {
	pool := parallel.NewPool(parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1})
	defer pool.Close()

	cfg := sequential()
	cfg.Pool = pool
	tr := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, cfg)
	tr.Step(target200)
	tr.Close()

	// An open pool still splits work across its workers.
	assert.Equal(t, 2, pool.Chunks(4))
}

func TestStep_TranslatorLengthPanics(t *testing.T) {
	cfg := sequential()
	cfg.Translator = func(old, _ []float64) []float64 { return old[:0] }
	tr := trainer.New(1, nn.Identity[dual.Dual], nil, struct{}{}, cfg)
	defer tr.Close()

	assert.Panics(t, func() { tr.Step(target200) })
}

func TestClampTranslator(t *testing.T) {
	clamp := trainer.ClampTranslator(0, 1)
	old := []float64{0.5, 0.5, 0.5}
	got := clamp(old, []float64{-1, 0.25, 2})

	assert.Equal(t, []float64{0, 0.75, 1}, got)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, old)
	assert.Panics(t, func() { trainer.ClampTranslator(1, 0) })
}

func TestStep_ClampedTraining(t *testing.T) {
	cfg := sequential()
	cfg.Translator = trainer.ClampTranslator(0, 1)
	tr := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, cfg)
	defer tr.Close()

	for tr.Step(target200) {
	}
	assert.Equal(t, []float64{1}, tr.Params())
}

func TestShake(t *testing.T) {
	a := trainer.New(3, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	b := trainer.New(3, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer a.Close()
	defer b.Close()

	a.Shake(0.5)
	b.Shake(0.5)

	assert.Equal(t, a.Params(), b.Params(), "same seed, same shake")
	for _, p := range a.Params() {
		assert.LessOrEqual(t, p, 0.5)
		assert.GreaterOrEqual(t, p, -0.5)
	}
	_, ok := a.LastCost()
	assert.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")

	src := trainer.New(3, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer src.Close()
	require.NoError(t, src.SetParams([]float64{0.1, -2.5, 1e-9}))
	require.NoError(t, src.Save(path))

	dst := trainer.New(3, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer dst.Close()
	require.NoError(t, dst.Load(path))
	assert.Equal(t, src.Params(), dst.Params())
}

func TestLoad_MalformedLineKeepsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\nnope\n3\n"), 0o600))

	tr := trainer.New(3, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer tr.Close()
	require.NoError(t, tr.SetParams([]float64{7, 7, 7}))
	require.NoError(t, tr.Load(path))

	assert.Equal(t, []float64{1, 7, 3}, tr.Params())
}

func TestLoad_MissingFile(t *testing.T) {
	tr := trainer.New(1, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer tr.Close()

	assert.Error(t, tr.Load(filepath.Join(t.TempDir(), "absent.txt")))
	assert.Equal(t, []float64{0}, tr.Params())
}

func TestSetParams_LengthMismatch(t *testing.T) {
	tr := trainer.New(2, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	defer tr.Close()

	assert.Error(t, tr.SetParams([]float64{1}))
	assert.Equal(t, 2, tr.NumParams())
}

func TestNew_InvalidParamCount(t *testing.T) {
	assert.Panics(t, func() {
		trainer.New(0, nn.Identity[dual.Dual], nil, struct{}{}, sequential())
	})
}

func TestNew_InvalidStepSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*trainer.Config)
	}{
		{"negative initial factor", func(c *trainer.Config) { c.InitialFactor = -1 }},
		{"negative growth", func(c *trainer.Config) { c.Growth = -2 }},
		{"negative min factor", func(c *trainer.Config) { c.MinFactor = -1e-9 }},
		{"max below initial", func(c *trainer.Config) { c.InitialFactor = 8; c.MaxFactor = 2 }},
		{"negative reset factor", func(c *trainer.Config) { c.ResetFactor = -1 }},
		{"negative epsilon", func(c *trainer.Config) { c.GradientEpsilon = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sequential()
			tt.mutate(&cfg)
			assert.Panics(t, func() {
				trainer.New(1, nn.Identity[dual.Dual], nil, struct{}{}, cfg)
			})
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", trainer.Idle.String())
	assert.Equal(t, "evaluating", trainer.Evaluating.String())
	assert.Equal(t, "searching", trainer.StepSearching.String())
	assert.Equal(t, "accepted", trainer.Accepted.String())
	assert.Equal(t, "plateaued", trainer.Plateaued.String())
	assert.Equal(t, "unknown", trainer.State(42).String())
}
