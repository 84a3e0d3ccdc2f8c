package dual

import "math"

// Scalar is the capability set a model function may rely on.
//
// It is satisfied by Dual (training) and Float (inference), so one generic
// body serves both:
//
//	func Line[S dual.Scalar[S]](params []S, input []float64, _ struct{}) []S {
//	    x := dual.Const[S](input[0])
//	    return []S{params[0].Mul(x).Add(params[1])}
//	}
type Scalar[S any] interface {
	// FromFloat builds a constant. It is called on the zero value.
	FromFloat(v float64) S

	Add(o S) S
	Sub(o S) S
	Mul(o S) S
	Div(o S) S

	AddF(f float64) S
	SubF(f float64) S
	MulF(f float64) S
	DivF(f float64) S

	Sqrt() S
	Neg() S
	Square() S
	Abs() S
	ReLU() S
	Sigmoid() S

	Less(o S) bool
	LessF(f float64) bool
	GreaterF(f float64) bool

	// Real returns the plain value.
	Real() float64
}

// Const builds the constant v in scalar type S.
func Const[S Scalar[S]](v float64) S {
	var zero S
	return zero.FromFloat(v)
}

// Lift converts plain values to constants of scalar type S.
func Lift[S Scalar[S]](values []float64) []S {
	out := make([]S, len(values))
	for i, v := range values {
		out[i] = Const[S](v)
	}
	return out
}

// Reals extracts the plain values of xs.
func Reals[S Scalar[S]](xs []S) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Real()
	}
	return out
}

// Float is a plain float64 satisfying Scalar. It carries no gradient and is
// used on the inference path.
type Float float64

var (
	_ Scalar[Float] = Float(0)
	_ Scalar[Dual]  = Dual{}
)

// FromFloat returns v as a Float.
func (Float) FromFloat(v float64) Float { return Float(v) }

// Add returns x + o.
func (x Float) Add(o Float) Float { return x + o }

// Sub returns x - o.
func (x Float) Sub(o Float) Float { return x - o }

// Mul returns x * o.
func (x Float) Mul(o Float) Float { return x * o }

// Div returns x / o.
func (x Float) Div(o Float) Float { return x / o }

// AddF returns x + f.
func (x Float) AddF(f float64) Float { return x + Float(f) }

// SubF returns x - f.
func (x Float) SubF(f float64) Float { return x - Float(f) }

// MulF returns x * f.
func (x Float) MulF(f float64) Float { return x * Float(f) }

// DivF returns x / f.
func (x Float) DivF(f float64) Float { return x / Float(f) }

// Sqrt returns √x.
func (x Float) Sqrt() Float { return Float(math.Sqrt(float64(x))) }

// Neg returns -x.
func (x Float) Neg() Float { return -x }

// Square returns x².
func (x Float) Square() Float { return x * x }

// Abs returns |x|.
func (x Float) Abs() Float { return Float(math.Abs(float64(x))) }

// ReLU returns max(x, 0).
func (x Float) ReLU() Float {
	if x < 0 {
		return 0
	}
	return x
}

// Sigmoid returns 1 / (1 + e^(−x)).
func (x Float) Sigmoid() Float { return Float(sigmoid(float64(x))) }

// Less reports whether x < o.
func (x Float) Less(o Float) bool { return x < o }

// LessF reports whether x < f.
func (x Float) LessF(f float64) bool { return float64(x) < f }

// GreaterF reports whether x > f.
func (x Float) GreaterF(f float64) bool { return float64(x) > f }

// Real returns x as float64.
func (x Float) Real() float64 { return float64(x) }
