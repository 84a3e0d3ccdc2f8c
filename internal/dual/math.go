package dual

import "math"

// Sqrt returns √d.
//
// ∂√a = ∂a / (2√a)
func (d Dual) Sqrt() Dual {
	r := math.Sqrt(d.real)
	return verify(Dual{real: r, grad: scaled(d.grad, 1/(2*r))}, "Sqrt")
}

// Neg returns -d.
func (d Dual) Neg() Dual {
	return Dual{real: -d.real, grad: scaled(d.grad, -1)}
}

// Square returns d².
//
// ∂a² = 2a·∂a
func (d Dual) Square() Dual {
	return Dual{real: d.real * d.real, grad: scaled(d.grad, 2*d.real)}
}

// Abs returns |d|: value and gradient are negated when d is negative.
func (d Dual) Abs() Dual {
	if d.real < 0 {
		return d.Neg()
	}
	return d
}

// ReLU returns max(d, 0). A negative d becomes a constant zero.
func (d Dual) ReLU() Dual {
	if d.real < 0 {
		return Dual{}
	}
	return d
}

// Sigmoid returns σ(d) = 1 / (1 + e^(−d)).
//
// ∂σ(a) = σ(a)·(1−σ(a))·∂a
func (d Dual) Sigmoid() Dual {
	s := sigmoid(d.real)
	return Dual{real: s, grad: scaled(d.grad, s*(1-s))}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
