package cost

import (
	"github.com/born-ml/dualfit/internal/dual"
	"github.com/born-ml/dualfit/internal/grad"
	"github.com/born-ml/dualfit/internal/parallel"
)

// Config configures an Evaluator. Zero values select defaults.
type Config struct {
	Backend grad.Backend // Gradient storage; default hybrid with automatic criticality.
	Cost    Func         // Per-example cost; default L1.
	Penalty Penalty      // Optional regularizer.
}

func (c Config) withDefaults() Config {
	if c.Backend == nil {
		c.Backend = grad.NewHybridBackend(grad.AutoCriticality)
	}
	if c.Cost == nil {
		c.Cost = L1{}
	}
	return c
}

// Evaluator computes the mean cost of a model over a dataset.
type Evaluator[E any] struct {
	train Model[dual.Dual, E]
	infer Model[dual.Float, E]
	extra E
	pool  *parallel.Pool
	cfg   Config
}

// NewEvaluator creates an evaluator. infer may be nil, in which case the
// training model is run with constant duals on the float path. A nil pool
// evaluates sequentially.
func NewEvaluator[E any](train Model[dual.Dual, E], infer Model[dual.Float, E], extra E, pool *parallel.Pool, cfg Config) *Evaluator[E] {
	if train == nil {
		panic("cost: nil training model")
	}
	if pool == nil {
		pool = parallel.NewPool(parallel.Config{Enabled: false})
	}
	return &Evaluator[E]{
		train: train,
		infer: infer,
		extra: extra,
		pool:  pool,
		cfg:   cfg.withDefaults(),
	}
}

// Config returns the effective configuration.
func (e *Evaluator[E]) Config() Config {
	return e.cfg
}

// Seed builds one dual per parameter, each seeded at its own index.
func (e *Evaluator[E]) Seed(params []float64) []dual.Dual {
	seeds := make([]dual.Dual, len(params))
	for i, v := range params {
		seeds[i] = dual.Param(e.cfg.Backend, len(params), i, v)
	}
	return seeds
}

// Evaluate returns the mean cost at params together with its gradient.
//
// The gradient always has dimension len(params), even when the cost does
// not depend on any parameter. An empty dataset costs zero plus the
// penalty.
func (e *Evaluator[E]) Evaluate(params []float64, data Dataset) dual.Dual {
	seeds := e.Seed(params)

	sum := parallel.Reduce(e.pool, len(data), dual.New(0), func(lo, hi int) dual.Dual {
		acc := dual.New(0)
		for _, dp := range data[lo:hi] {
			pred := e.train(seeds, dp.Input, e.extra)
			acc = acc.Add(e.cfg.Cost.Dual(pred, dp.Output))
		}
		return acc
	}, dual.Dual.Add)

	if len(data) > 0 {
		sum = sum.DivF(float64(len(data)))
	}
	if e.cfg.Penalty != nil {
		sum = sum.Add(e.cfg.Penalty.Dual(seeds))
	}
	if sum.IsConstant() {
		sum = dual.Full(sum.Real(), e.cfg.Backend.Zeros(len(params)))
	}
	return sum
}

// Value returns the mean cost at params without computing a gradient.
func (e *Evaluator[E]) Value(params []float64, data Dataset) float64 {
	var sum float64
	if e.infer != nil {
		ps := dual.Lift[dual.Float](params)
		sum = parallel.Reduce(e.pool, len(data), 0.0, func(lo, hi int) float64 {
			var acc float64
			for _, dp := range data[lo:hi] {
				acc += e.cfg.Cost.Float(e.infer(ps, dp.Input, e.extra), dp.Output)
			}
			return acc
		}, add)
	} else {
		ps := dual.Lift[dual.Dual](params)
		sum = parallel.Reduce(e.pool, len(data), 0.0, func(lo, hi int) float64 {
			var acc float64
			for _, dp := range data[lo:hi] {
				acc += e.cfg.Cost.Dual(e.train(ps, dp.Input, e.extra), dp.Output).Real()
			}
			return acc
		}, add)
	}

	if len(data) > 0 {
		sum /= float64(len(data))
	}
	if e.cfg.Penalty != nil {
		sum += e.cfg.Penalty.Float(params)
	}
	return sum
}

// Predict runs the inference model on one input.
func (e *Evaluator[E]) Predict(params, input []float64) []float64 {
	if e.infer != nil {
		return dual.Reals(e.infer(dual.Lift[dual.Float](params), input, e.extra))
	}
	return dual.Reals(e.train(dual.Lift[dual.Dual](params), input, e.extra))
}

func add(a, b float64) float64 { return a + b }
