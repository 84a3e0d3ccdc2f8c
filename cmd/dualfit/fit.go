package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/dualfit/internal/config"
	"github.com/born-ml/dualfit/internal/cost"
	"github.com/born-ml/dualfit/internal/dual"
	"github.com/born-ml/dualfit/internal/grad"
	"github.com/born-ml/dualfit/internal/nn"
	"github.com/born-ml/dualfit/internal/parallel"
	"github.com/born-ml/dualfit/internal/trainer"
)

// model is the part of trainer.Trainer the command drives, independent of
// the model's extra data type.
type model interface {
	Step(data cost.Dataset) bool
	Shake(magnitude float64)
	LastCost() (float64, bool)
	Cost(data cost.Dataset) float64
	Params() []float64
	SetParams(params []float64) error
	Factor() float64
	State() trainer.State
	Eval(input []float64) []float64
	Save(path string) error
	Load(path string) error
	Close()
}

var (
	_ model = (*trainer.Trainer[struct{}])(nil)
	_ model = (*trainer.Trainer[nn.Network])(nil)
)

// trainerConfig translates the run configuration into a trainer.Config.
func trainerConfig(cfg *config.Config, logger *log.Logger) (trainer.Config, error) {
	kind, err := grad.ParseKind(cfg.Backend)
	if err != nil {
		return trainer.Config{}, err
	}
	criticality := cfg.Criticality
	if criticality == 0 {
		criticality = grad.AutoCriticality
	}
	backend, err := grad.NewBackend(kind, criticality)
	if err != nil {
		return trainer.Config{}, err
	}

	costFn, err := cost.ParseFunc(cfg.Cost)
	if err != nil {
		return trainer.Config{}, err
	}

	tc := trainer.Config{
		Backend:  backend,
		Cost:     costFn,
		Parallel: parallel.DefaultConfig(),
		Seed:     cfg.Seed,
		Logger:   logger,
	}
	switch cfg.Penalty {
	case "l1":
		tc.Penalty = cost.L1Penalty{Weight: cfg.Weight}
	case "l2":
		tc.Penalty = cost.L2Penalty{Weight: cfg.Weight}
	}
	if len(cfg.Clamp) == 2 {
		tc.Translator = trainer.ClampTranslator(cfg.Clamp[0], cfg.Clamp[1])
	}
	if cfg.NumWorkers > 0 {
		tc.Parallel.NumWorkers = cfg.NumWorkers
		tc.Parallel.Enabled = cfg.NumWorkers > 1
	}
	return tc, nil
}

// newModel builds the trainer for the configured model.
func newModel(cfg *config.Config, logger *log.Logger) (model, error) {
	tc, err := trainerConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	switch cfg.Model {
	case config.ModelMLP:
		hidden, err := nn.ParseActivation(cfg.Hidden)
		if err != nil {
			return nil, err
		}
		net := nn.Network{Layout: nn.Layout(cfg.Layout), Hidden: hidden}
		t := trainer.New(net.NumParams(), nn.MLP[dual.Dual], nn.MLP[dual.Float], net, tc)

		//nolint:gosec // Intentional deterministic seed for reproducibility
		start := nn.Xavier(net.Layout, rand.New(rand.NewSource(cfg.Seed)))
		if err := t.SetParams(start); err != nil {
			t.Close()
			return nil, err
		}
		return t, nil
	default:
		return trainer.New(cfg.NumParams(), nn.Polynomial[dual.Dual], nn.Polynomial[dual.Float], struct{}{}, tc), nil
	}
}

// dataset samples the target polynomial.
func dataset(cfg *config.Config) cost.Dataset {
	return cost.Sample(func(x float64) float64 {
		return nn.PolynomialValue(cfg.Target, x)
	}, cfg.From, cfg.To, cfg.Samples)
}

type fitResult struct {
	Steps    int
	Accepted int
	Plateaus int
	Cost     float64
	Params   []float64
}

// runFit trains the configured model and keeps the best parameters seen.
//
// A plateau shakes the parameters when cfg.Shake is set; the run stops at
// cfg.Steps, after cfg.Patience plateaus, on the first plateau without
// shaking, or when ctx is done.
func runFit(ctx context.Context, cfg *config.Config, logger *log.Logger) (fitResult, error) {
	m, err := newModel(cfg, logger)
	if err != nil {
		return fitResult{}, errors.Wrap(err, "build model")
	}
	defer m.Close()

	data := dataset(cfg)
	res := fitResult{Cost: m.Cost(data), Params: m.Params()}
	logger.Printf("model=%s params=%d samples=%d cost=%.6g", cfg.Model, len(res.Params), len(data), res.Cost)

	for res.Steps < cfg.Steps {
		if err := ctx.Err(); err != nil {
			logger.Printf("stopping: %v", err)
			break
		}
		res.Steps++

		if m.Step(data) {
			res.Accepted++
			if c, ok := m.LastCost(); ok && c < res.Cost {
				res.Cost, res.Params = c, m.Params()
			}
		} else {
			res.Plateaus++
			if cfg.Shake == 0 || res.Plateaus > cfg.Patience {
				logger.Printf("step=%d plateau=%d stopping", res.Steps, res.Plateaus)
				break
			}
			m.Shake(cfg.Shake)
		}

		if res.Steps%cfg.LogEvery == 0 {
			c, _ := m.LastCost()
			logger.Printf("step=%d cost=%.6g best=%.6g factor=%g state=%s", res.Steps, c, res.Cost, m.Factor(), m.State())
		}
	}

	if err := m.SetParams(res.Params); err != nil {
		return res, err
	}
	logger.Printf("done steps=%d accepted=%d plateaus=%d cost=%.6g", res.Steps, res.Accepted, res.Plateaus, res.Cost)

	if cfg.Params != "" {
		if err := m.Save(cfg.Params); err != nil {
			return res, err
		}
		logger.Printf("saved params=%s", cfg.Params)
	}
	return res, nil
}

// runEval loads saved parameters and evaluates the configured model at xs.
func runEval(cfg *config.Config, path string, xs []float64, logger *log.Logger) ([]float64, error) {
	m, err := newModel(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "build model")
	}
	defer m.Close()

	if err := m.Load(path); err != nil {
		return nil, err
	}

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Eval([]float64{x})[0]
	}
	return out, nil
}
