// Package nn provides ready-made model functions: the identity, polynomials
// and small fully connected networks.
//
// Every model is generic over dual.Scalar so one body serves training with
// dual.Dual and inference with dual.Float:
//
//	t := trainer.New(net.NumParams(), nn.MLP[dual.Dual], nn.MLP[dual.Float], net, trainer.Config{})
package nn

import (
	"fmt"

	"github.com/born-ml/dualfit/internal/dual"
)

// Identity returns the parameters themselves, ignoring the input. Fitting it
// finds the parameter values that minimize the cost directly.
func Identity[S dual.Scalar[S]](params []S, _ []float64, _ struct{}) []S {
	return append([]S(nil), params...)
}

// Polynomial evaluates Σ params[i]·x^i at x = input[0]; params holds the
// coefficients from the constant term up.
func Polynomial[S dual.Scalar[S]](params []S, input []float64, _ struct{}) []S {
	if len(input) != 1 {
		panic(fmt.Sprintf("nn: polynomial takes 1 input, got %d", len(input)))
	}
	if len(params) == 0 {
		return []S{dual.Const[S](0)}
	}

	x := input[0]
	sum := params[0]
	power := x
	for _, c := range params[1:] {
		sum = sum.Add(c.MulF(power))
		power *= x
	}
	return []S{sum}
}

// PolynomialValue evaluates the polynomial with coefficients coeffs at x.
func PolynomialValue(coeffs []float64, x float64) float64 {
	var sum float64
	power := 1.0
	for _, c := range coeffs {
		sum += c * power
		power *= x
	}
	return sum
}
