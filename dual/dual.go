// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides forward-mode automatic differentiation.
//
// Write a model once against Scalar and instantiate it twice:
//
//	func Line[S dual.Scalar[S]](params []S, input []float64, _ struct{}) []S {
//	    return []S{params[0].MulF(input[0]).Add(params[1])}
//	}
//
//	Line[dual.Dual]  // training: values with gradients
//	Line[dual.Float] // inference: plain values
package dual

import (
	"github.com/born-ml/dualfit/grad"
	"github.com/born-ml/dualfit/internal/dual"
)

// Dual is a value together with its gradient.
type Dual = dual.Dual

// Float is a plain float64 satisfying Scalar.
type Float = dual.Float

// Scalar is the capability set model functions are written against.
type Scalar[S any] = dual.Scalar[S]

// New creates a constant dual.
func New(real float64) Dual { return dual.New(real) }

// Param creates the seed dual of parameter index.
func Param(backend grad.Backend, dim, index int, real float64) Dual {
	return dual.Param(backend, dim, index, real)
}

// Full creates a dual from a value and a gradient.
func Full(real float64, g grad.Vector) Dual { return dual.Full(real, g) }

// Const builds the constant v in scalar type S.
func Const[S Scalar[S]](v float64) S { return dual.Const[S](v) }

// Lift converts plain values to constants of scalar type S.
func Lift[S Scalar[S]](values []float64) []S { return dual.Lift[S](values) }

// Reals extracts the plain values of xs.
func Reals[S Scalar[S]](xs []S) []float64 { return dual.Reals(xs) }
