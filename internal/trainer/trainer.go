// Package trainer fits model parameters to a dataset by line-search gradient
// descent on forward-mode gradients.
package trainer

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/dualfit/internal/cost"
	"github.com/born-ml/dualfit/internal/dual"
	"github.com/born-ml/dualfit/internal/grad"
	"github.com/born-ml/dualfit/internal/parallel"
	"github.com/born-ml/dualfit/internal/serialization"
)

// Config holds configuration for a Trainer. Zero fields take the defaults
// noted on each field.
type Config struct {
	Backend    grad.Backend // Gradient storage (default: hybrid, automatic criticality)
	Cost       cost.Func    // Per-example cost (default: cost.L1)
	Penalty    cost.Penalty // Optional regularizer added to the mean cost
	Translator Translator   // Parameter update (default: AddTranslator)

	// Pool evaluates examples in parallel. When nil the trainer starts and
	// owns a pool built from Parallel (default: parallel.DefaultConfig()).
	Pool     *parallel.Pool
	Parallel parallel.Config

	InitialFactor   float64 // First step length (default: 1)
	Growth          float64 // Factor multiplier after an accepted step (default: 4)
	MaxFactor       float64 // Upper bound of the carried factor (default: 1e12)
	MinFactor       float64 // Plateau threshold for the factor (default: 1e-15)
	ResetFactor     float64 // Factor restored on plateau (default: InitialFactor)
	GradientEpsilon float64 // Gradient norms at or below this plateau at once (default: 1e-12)

	Seed   int64       // Shake RNG seed; negative picks a random seed
	Logger *log.Logger // Diagnostics (default: log.Default())
}

func (c Config) withDefaults() Config {
	if c.Translator == nil {
		c.Translator = AddTranslator
	}
	if c.InitialFactor == 0 {
		c.InitialFactor = 1
	}
	if c.Growth == 0 {
		c.Growth = 4
	}
	if c.MaxFactor == 0 {
		c.MaxFactor = 1e12
	}
	if c.MinFactor == 0 {
		c.MinFactor = 1e-15
	}
	if c.ResetFactor == 0 {
		c.ResetFactor = c.InitialFactor
	}
	if c.GradientEpsilon == 0 {
		c.GradientEpsilon = 1e-12
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

// validate checks the step-length settings after defaults are applied.
func (c Config) validate() error {
	switch {
	case !(c.InitialFactor > 0):
		return errors.Errorf("initial factor must be positive, got %g", c.InitialFactor)
	case !(c.Growth > 0):
		return errors.Errorf("growth must be positive, got %g", c.Growth)
	case !(c.MinFactor > 0):
		return errors.Errorf("min factor must be positive, got %g", c.MinFactor)
	case !(c.MaxFactor >= c.InitialFactor):
		return errors.Errorf("max factor %g is below initial factor %g", c.MaxFactor, c.InitialFactor)
	case !(c.ResetFactor > 0):
		return errors.Errorf("reset factor must be positive, got %g", c.ResetFactor)
	case !(c.GradientEpsilon >= 0):
		return errors.Errorf("gradient epsilon must not be negative, got %g", c.GradientEpsilon)
	}
	return nil
}

// Trainer owns a parameter vector and moves it downhill one Step at a time.
//
// Step size is found by line search: the carried factor is tried first and
// halved until the cost improves, then grown for the next step. A step that
// finds no improvement returns false and leaves the parameters unchanged.
//
// Example:
//
//	t := trainer.New(4, nn.Polynomial[dual.Dual], nn.Polynomial[dual.Float], struct{}{}, trainer.Config{})
//	defer t.Close()
//	for t.Step(data) {
//	}
//
// A Trainer is not safe for concurrent use.
type Trainer[E any] struct {
	params   []float64
	eval     *cost.Evaluator[E]
	pool     *parallel.Pool
	ownsPool bool
	rng      *rand.Rand
	cfg      Config

	factor   float64
	lastCost float64
	hasCost  bool
	state    State
}

// New creates a trainer for numParams parameters, all starting at zero.
//
// train is the model instantiated with dual numbers; infer is the same model
// on plain floats and may be nil, in which case trial steps run train with
// constant duals.
func New[E any](numParams int, train cost.Model[dual.Dual, E], infer cost.Model[dual.Float, E], extra E, cfg Config) *Trainer[E] {
	if numParams <= 0 {
		panic(fmt.Sprintf("trainer: parameter count must be positive, got %d", numParams))
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		panic("trainer: " + err.Error())
	}

	t := &Trainer[E]{
		params: make([]float64, numParams),
		pool:   cfg.Pool,
		cfg:    cfg,
		factor: cfg.InitialFactor,
		state:  Idle,
	}
	if t.pool == nil {
		pc := cfg.Parallel
		if pc == (parallel.Config{}) {
			pc = parallel.DefaultConfig()
		}
		t.pool = parallel.NewPool(pc)
		t.ownsPool = true
	}

	if cfg.Seed >= 0 {
		t.rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	} else {
		t.rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // User requested random seed
	}

	t.eval = cost.NewEvaluator(train, infer, extra, t.pool, cost.Config{
		Backend: cfg.Backend,
		Cost:    cfg.Cost,
		Penalty: cfg.Penalty,
	})
	return t
}

// Step performs one line-search step over data.
//
// It returns true when the parameters moved to a strictly lower cost, and
// false on a plateau: either the gradient vanished or no step down to
// MinFactor improved the cost.
func (t *Trainer[E]) Step(data cost.Dataset) bool {
	t.state = Evaluating
	current := t.eval.Evaluate(t.params, data)
	before := current.Real()
	t.lastCost, t.hasCost = before, true

	direction := current.Gradient()
	norm := floats.Norm(direction, 2)
	if !(norm > t.cfg.GradientEpsilon) {
		t.state = Plateaued
		return false
	}
	floats.Scale(-1/norm, direction)

	t.state = StepSearching
	delta := make([]float64, len(direction))
	for f := t.factor; f >= t.cfg.MinFactor; f /= 2 {
		floats.ScaleTo(delta, f, direction)
		candidate := t.cfg.Translator(t.params, delta)
		if len(candidate) != len(t.params) {
			panic(fmt.Sprintf("trainer: translator returned %d parameters, want %d", len(candidate), len(t.params)))
		}

		if after := t.eval.Value(candidate, data); after < before {
			t.params = candidate
			t.lastCost = after
			t.factor = min(f*t.cfg.Growth, t.cfg.MaxFactor)
			t.state = Accepted
			return true
		}
	}

	t.factor = t.cfg.ResetFactor
	t.state = Plateaued
	return false
}

// Shake moves every parameter by a uniform random offset in
// [-magnitude, magnitude], through the configured translator. It is used to
// escape a plateau.
func (t *Trainer[E]) Shake(magnitude float64) {
	offsets := make([]float64, len(t.params))
	for i := range offsets {
		offsets[i] = (2*t.rng.Float64() - 1) * magnitude
	}
	t.params = t.cfg.Translator(t.params, offsets)
	t.hasCost = false
}

// Save writes the parameters to path.
func (t *Trainer[E]) Save(path string) error {
	return errors.Wrapf(serialization.SaveFile(path, t.params), "save parameters to %s", path)
}

// Load reads parameters from path. Lines that do not parse keep the current
// value of their parameter; see serialization.ReadFrom.
func (t *Trainer[E]) Load(path string) error {
	report, err := serialization.LoadFile(path, t.params, t.cfg.Logger)
	if err != nil {
		return errors.Wrapf(err, "load parameters from %s", path)
	}
	t.hasCost = false
	t.cfg.Logger.Printf("trainer: loaded path=%s applied=%d malformed=%d", path, report.Applied, len(report.Malformed))
	return nil
}

// Params returns a copy of the current parameters.
func (t *Trainer[E]) Params() []float64 {
	return append([]float64(nil), t.params...)
}

// SetParams replaces the current parameters.
func (t *Trainer[E]) SetParams(params []float64) error {
	if len(params) != len(t.params) {
		return errors.Errorf("trainer: got %d parameters, want %d", len(params), len(t.params))
	}
	copy(t.params, params)
	t.hasCost = false
	return nil
}

// NumParams returns the parameter count.
func (t *Trainer[E]) NumParams() int {
	return len(t.params)
}

// LastCost returns the cost at the current parameters as of the last Step.
// ok is false before the first step and after the parameters were replaced
// by Shake, Load or SetParams.
func (t *Trainer[E]) LastCost() (value float64, ok bool) {
	return t.lastCost, t.hasCost
}

// Cost evaluates the mean cost of the current parameters over data.
func (t *Trainer[E]) Cost(data cost.Dataset) float64 {
	return t.eval.Value(t.params, data)
}

// Factor returns the step factor the next Step starts from.
func (t *Trainer[E]) Factor() float64 {
	return t.factor
}

// State returns the outcome of the last Step.
func (t *Trainer[E]) State() State {
	return t.state
}

// Eval runs the model with the current parameters on one input.
func (t *Trainer[E]) Eval(input []float64) []float64 {
	return t.eval.Predict(t.params, input)
}

// Close releases the worker pool if the trainer started it.
func (t *Trainer[E]) Close() {
	if t.ownsPool {
		t.pool.Close()
	}
}
