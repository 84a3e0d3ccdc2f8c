// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cost provides datasets, cost functions and the evaluator that
// reduces a model's per-example cost into one differentiable value.
package cost

import (
	"golang.org/x/exp/constraints"

	"github.com/born-ml/dualfit/dual"
	"github.com/born-ml/dualfit/internal/cost"
	"github.com/born-ml/dualfit/parallel"
)

// DataPoint is one training example.
type DataPoint = cost.DataPoint

// Dataset is a collection of examples.
type Dataset = cost.Dataset

// Model is a parameterized function generic over its scalar type.
type Model[S dual.Scalar[S], E any] = cost.Model[S, E]

// Func is a per-example cost.
type Func = cost.Func

// L1 is the sum of absolute errors (default).
type L1 = cost.L1

// L2 is the sum of squared errors.
type L2 = cost.L2

// Penalty is a regularizer over the parameters.
type Penalty = cost.Penalty

// L1Penalty adds Weight·Σ|p|.
type L1Penalty = cost.L1Penalty

// L2Penalty adds Weight·Σp².
type L2Penalty = cost.L2Penalty

// Config configures an Evaluator.
type Config = cost.Config

// Evaluator computes mean cost and gradient over a dataset.
type Evaluator[E any] = cost.Evaluator[E]

// NewEvaluator creates an evaluator. A nil pool evaluates sequentially.
func NewEvaluator[E any](train Model[dual.Dual, E], infer Model[dual.Float, E], extra E, pool *parallel.Pool, cfg Config) *Evaluator[E] {
	return cost.NewEvaluator(train, infer, extra, pool, cfg)
}

// ParseFunc returns the cost function named "l1" or "l2".
func ParseFunc(name string) (Func, error) { return cost.ParseFunc(name) }

// Sample builds n evenly spaced examples of f on [from, to].
//
// Example:
//
//	data := cost.Sample(math.Sin, 0, math.Pi, 50)
func Sample[T constraints.Float](f func(T) T, from, to T, n int) Dataset {
	return cost.Sample(f, from, to, n)
}
