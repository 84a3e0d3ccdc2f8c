// Package cost evaluates a parameterized model over a dataset and reduces the
// per-example error into one differentiable scalar.
package cost

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/dualfit/internal/dual"
)

// DataPoint is one training example.
type DataPoint struct {
	Input  []float64
	Output []float64
}

// Dataset is a read-only collection of examples.
type Dataset []DataPoint

// Model is a parameterized function generic over its scalar type.
//
// The same body is instantiated with dual.Dual for training and dual.Float
// for inference. Models run concurrently on a shared params slice and must
// not write to it.
type Model[S dual.Scalar[S], E any] func(params []S, input []float64, extra E) []S

// Func is the per-example cost between a prediction and its target.
type Func interface {
	// Dual returns the differentiable cost of one example.
	Dual(pred []dual.Dual, target []float64) dual.Dual

	// Float returns the plain cost of one example.
	Float(pred []dual.Float, target []float64) float64
}

// L1 is the sum of absolute errors over output components. It is the
// default cost.
type L1 struct{}

// Dual implements Func.
func (L1) Dual(pred []dual.Dual, target []float64) dual.Dual {
	return absolute(pred, target)
}

// Float implements Func.
func (L1) Float(pred []dual.Float, target []float64) float64 {
	return absolute(pred, target).Real()
}

// L2 is the sum of squared errors over output components.
type L2 struct{}

// Dual implements Func.
func (L2) Dual(pred []dual.Dual, target []float64) dual.Dual {
	return squared(pred, target)
}

// Float implements Func.
func (L2) Float(pred []dual.Float, target []float64) float64 {
	return squared(pred, target).Real()
}

func checkOutputs(got, want int) {
	if got != want {
		panic(fmt.Sprintf("cost: model returned %d outputs, data point has %d", got, want))
	}
}

func absolute[S dual.Scalar[S]](pred []S, target []float64) S {
	checkOutputs(len(pred), len(target))
	sum := dual.Const[S](0)
	for i, p := range pred {
		sum = sum.Add(p.SubF(target[i]).Abs())
	}
	return sum
}

func squared[S dual.Scalar[S]](pred []S, target []float64) S {
	checkOutputs(len(pred), len(target))
	sum := dual.Const[S](0)
	for i, p := range pred {
		sum = sum.Add(p.SubF(target[i]).Square())
	}
	return sum
}

// ParseFunc returns the cost function with the given name ("l1" or "l2").
// An empty name selects L1.
func ParseFunc(name string) (Func, error) {
	switch strings.ToLower(name) {
	case "", "l1", "mae":
		return L1{}, nil
	case "l2", "mse":
		return L2{}, nil
	default:
		return nil, errors.Errorf("unknown cost function %q", name)
	}
}
