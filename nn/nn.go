// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides ready-made models for the trainer.
//
// # Overview
//
// This package contains:
//   - Identity: outputs the parameters themselves
//   - Polynomial: Σ p[i]·x^i over one input
//   - MLP: a fully connected network described by Network
//   - Initialization: Xavier
//
// # Basic Usage
//
//	net := nn.Network{Layout: nn.Layout{2, 4, 1}, Hidden: nn.Sigmoid}
//	t := trainer.New(net.NumParams(), nn.MLP[dual.Dual], nn.MLP[dual.Float], net, trainer.Config{})
//	_ = t.SetParams(nn.Xavier(net.Layout, nil))
package nn

import (
	"math/rand"

	"github.com/born-ml/dualfit/dual"
	"github.com/born-ml/dualfit/internal/nn"
)

// Layout lists layer widths, input first.
type Layout = nn.Layout

// Network describes a fully connected network.
type Network = nn.Network

// Activation is an element-wise nonlinearity.
type Activation = nn.Activation

// LayerWeights is one layer in matrix form.
type LayerWeights = nn.LayerWeights

// Activations.
const (
	None    = nn.None
	ReLU    = nn.ReLU
	Sigmoid = nn.Sigmoid
)

// Identity returns the parameters themselves.
func Identity[S dual.Scalar[S]](params []S, input []float64, extra struct{}) []S {
	return nn.Identity(params, input, extra)
}

// Polynomial evaluates Σ params[i]·x^i at x = input[0].
func Polynomial[S dual.Scalar[S]](params []S, input []float64, extra struct{}) []S {
	return nn.Polynomial(params, input, extra)
}

// PolynomialValue evaluates the polynomial with coefficients coeffs at x.
func PolynomialValue(coeffs []float64, x float64) float64 {
	return nn.PolynomialValue(coeffs, x)
}

// MLP evaluates the network net.
func MLP[S dual.Scalar[S]](params []S, input []float64, net Network) []S {
	return nn.MLP(params, input, net)
}

// Linear is a fully connected layer reading its weights from params.
func Linear[S dual.Scalar[S]](params, in []S, outputs int) (out, rest []S) {
	return nn.Linear(params, in, outputs)
}

// Activate applies a to x.
func Activate[S dual.Scalar[S]](a Activation, x S) S { return nn.Activate(a, x) }

// ParseActivation parses "none", "relu" or "sigmoid".
func ParseActivation(name string) (Activation, error) { return nn.ParseActivation(name) }

// Xavier returns Glorot-initialized parameters for layout.
func Xavier(layout Layout, rng *rand.Rand) []float64 { return nn.Xavier(layout, rng) }

// Weights splits flat parameters into per-layer matrices.
func Weights(layout Layout, params []float64) []LayerWeights { return nn.Weights(layout, params) }

// Forward evaluates matrix-form layers on input.
func Forward(layers []LayerWeights, input []float64, hidden, output Activation) []float64 {
	return nn.Forward(layers, input, hidden, output)
}
