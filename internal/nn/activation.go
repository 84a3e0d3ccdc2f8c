package nn

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/dualfit/internal/dual"
)

// Activation is an element-wise nonlinearity applied after a layer.
type Activation int

// Activations.
const (
	None    Activation = iota // f(x) = x
	ReLU                      // f(x) = max(0, x)
	Sigmoid                   // f(x) = 1 / (1 + e^(-x))
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case None:
		return "none"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// ParseActivation returns the activation with the given name. An empty name
// selects None.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "", "none", "linear":
		return None, nil
	case "relu":
		return ReLU, nil
	case "sigmoid":
		return Sigmoid, nil
	default:
		return None, errors.Errorf("unknown activation %q", name)
	}
}

// Activate applies a to x.
func Activate[S dual.Scalar[S]](a Activation, x S) S {
	switch a {
	case ReLU:
		return x.ReLU()
	case Sigmoid:
		return x.Sigmoid()
	default:
		return x
	}
}
