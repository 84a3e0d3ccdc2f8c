// Package dual implements forward-mode automatic differentiation with dual
// numbers.
//
// A Dual pairs a real value with a gradient vector holding its partial
// derivative with respect to every trainable parameter. Arithmetic on duals
// propagates the gradient through the chain rule:
//
//	backend := grad.NewHybridBackend(grad.AutoCriticality)
//	x := dual.Param(backend, 2, 0, 3.0) // ∂x/∂x = 1
//	y := dual.Param(backend, 2, 1, 4.0) // ∂y/∂y = 1
//	z := x.Mul(y).Add(x)                // z = xy + x
//	z.Gradient()                        // [y+1, x] = [5, 3]
//
// Model functions are written once against the Scalar constraint and
// instantiated with Dual for training and Float for inference.
//
// Operations never mutate their operands, so a Dual can be shared between
// goroutines once built.
package dual

import (
	"fmt"
	"math"

	"github.com/born-ml/dualfit/internal/grad"
)

// Dual is a real value together with its gradient.
//
// A nil gradient marks a constant: its partial derivatives are all zero,
// whatever the dimension of the duals it is combined with.
type Dual struct {
	real float64
	grad grad.Vector
}

// New creates a constant dual with a zero gradient.
func New(real float64) Dual {
	return Dual{real: real}
}

// Param creates the seed dual of parameter index: its gradient has a single
// 1.0 entry at index.
func Param(backend grad.Backend, dim, index int, real float64) Dual {
	return Dual{real: real, grad: backend.Seed(dim, index, 1)}
}

// Full creates a dual from a value and an existing gradient. The gradient
// is used as is, not copied.
func Full(real float64, g grad.Vector) Dual {
	return Dual{real: real, grad: g}
}

// Real returns the value part.
func (d Dual) Real() float64 {
	return d.real
}

// Grad returns a copy of the gradient vector, or nil for a constant.
// Derived duals may share storage, so the copy is the caller's to modify.
func (d Dual) Grad() grad.Vector {
	if d.grad == nil {
		return nil
	}
	return d.grad.Clone()
}

// Gradient returns the gradient as a dense slice, or nil for a constant.
func (d Dual) Gradient() []float64 {
	if d.grad == nil {
		return nil
	}
	return d.grad.Slice()
}

// IsConstant reports whether d carries no gradient.
func (d Dual) IsConstant() bool {
	return d.grad == nil
}

// IsFinite reports whether the value and every partial derivative are
// neither NaN nor infinite.
func (d Dual) IsFinite() bool {
	if math.IsNaN(d.real) || math.IsInf(d.real, 0) {
		return false
	}
	if d.grad == nil {
		return true
	}
	for _, v := range d.grad.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FromFloat returns a constant dual. It lets generic code build literals
// through the Scalar constraint.
func (Dual) FromFloat(v float64) Dual {
	return New(v)
}

// String formats the dual as value and gradient.
func (d Dual) String() string {
	if d.grad == nil {
		return fmt.Sprintf("Dual(%g)", d.real)
	}
	return fmt.Sprintf("Dual(%g, %v)", d.real, d.grad.Slice())
}

// Less compares the real parts.
func (d Dual) Less(o Dual) bool {
	return d.real < o.real
}

// LessF reports whether the real part is below f.
func (d Dual) LessF(f float64) bool {
	return d.real < f
}

// GreaterF reports whether the real part is above f.
func (d Dual) GreaterF(f float64) bool {
	return d.real > f
}

// FiniteChecks reports whether this build verifies Div, DivF and Sqrt
// results for NaN and infinities (build tag dualcheck).
func FiniteChecks() bool {
	return checkFinite
}
