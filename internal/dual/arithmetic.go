package dual

import (
	"fmt"

	"github.com/born-ml/dualfit/internal/grad"
)

// Add returns d + o.
//
// ∂(a+b) = ∂a + ∂b
func (d Dual) Add(o Dual) Dual {
	return Dual{real: d.real + o.real, grad: combine(d.grad, 1, o.grad, 1)}
}

// Sub returns d - o.
//
// ∂(a−b) = ∂a − ∂b
func (d Dual) Sub(o Dual) Dual {
	return Dual{real: d.real - o.real, grad: combine(d.grad, 1, o.grad, -1)}
}

// Mul returns d * o.
//
// ∂(a·b) = ∂a·b + ∂b·a
func (d Dual) Mul(o Dual) Dual {
	return Dual{real: d.real * o.real, grad: combine(d.grad, o.real, o.grad, d.real)}
}

// Div returns d / o.
//
// ∂(a/b) = (∂a·b − ∂b·a) / b²
func (d Dual) Div(o Dual) Dual {
	g := combine(d.grad, o.real, o.grad, -d.real)
	if g != nil {
		g.Scale(1 / (o.real * o.real))
	}
	return verify(Dual{real: d.real / o.real, grad: g}, "Div")
}

// AddF returns d + f. The gradient is shared with d.
func (d Dual) AddF(f float64) Dual {
	return Dual{real: d.real + f, grad: d.grad}
}

// SubF returns d - f. The gradient is shared with d.
func (d Dual) SubF(f float64) Dual {
	return Dual{real: d.real - f, grad: d.grad}
}

// MulF returns d * f.
func (d Dual) MulF(f float64) Dual {
	return Dual{real: d.real * f, grad: scaled(d.grad, f)}
}

// DivF returns d / f.
func (d Dual) DivF(f float64) Dual {
	return verify(Dual{real: d.real / f, grad: scaled(d.grad, 1/f)}, "DivF")
}

// combine returns sa·a + sb·b as a new vector, treating nil as zero.
// Neither operand is modified.
func combine(a grad.Vector, sa float64, b grad.Vector, sb float64) grad.Vector {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return scaled(b, sb)
	case b == nil:
		return scaled(a, sa)
	}

	if a.Dim() != b.Dim() {
		panic(fmt.Sprintf("dual: gradient dimension mismatch %d != %d", a.Dim(), b.Dim()))
	}

	g := scaled(a, sa)
	switch sb {
	case 1:
		g.Accumulate(b)
	case -1:
		g.Subtract(b)
	default:
		g.Accumulate(scaled(b, sb))
	}
	return g
}

// scaled returns k·v as a new vector, or nil for a nil v.
func scaled(v grad.Vector, k float64) grad.Vector {
	if v == nil {
		return nil
	}
	c := v.Clone()
	switch k {
	case 1:
	case -1:
		c.Neg()
	default:
		c.Scale(k)
	}
	return c
}
