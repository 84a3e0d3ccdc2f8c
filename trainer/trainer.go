// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainer fits model parameters by line-search gradient descent.
//
// Example:
//
//	data := cost.Dataset{{Input: []float64{0}, Output: []float64{200}}}
//	t := trainer.New(1, nn.Identity[dual.Dual], nn.Identity[dual.Float], struct{}{}, trainer.Config{})
//	defer t.Close()
//
//	for t.Step(data) {
//	}
//	fmt.Println(t.Params()) // [200]
package trainer

import (
	"github.com/born-ml/dualfit/cost"
	"github.com/born-ml/dualfit/dual"
	"github.com/born-ml/dualfit/internal/trainer"
)

// Trainer owns a parameter vector and steps it downhill.
type Trainer[E any] = trainer.Trainer[E]

// Config holds configuration for a Trainer.
type Config = trainer.Config

// State is the outcome of the last step.
type State = trainer.State

// Trainer states.
const (
	Idle          = trainer.Idle
	Evaluating    = trainer.Evaluating
	StepSearching = trainer.StepSearching
	Accepted      = trainer.Accepted
	Plateaued     = trainer.Plateaued
)

// Translator proposes new parameters from old ones and a step delta.
type Translator = trainer.Translator

// New creates a trainer for numParams parameters starting at zero.
func New[E any](numParams int, train cost.Model[dual.Dual, E], infer cost.Model[dual.Float, E], extra E, cfg Config) *Trainer[E] {
	return trainer.New(numParams, train, infer, extra, cfg)
}

// AddTranslator returns old + delta.
func AddTranslator(old, delta []float64) []float64 { return trainer.AddTranslator(old, delta) }

// ClampTranslator adds delta and clamps every parameter into [lo, hi].
func ClampTranslator(lo, hi float64) Translator { return trainer.ClampTranslator(lo, hi) }
