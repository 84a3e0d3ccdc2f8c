package nn

import (
	"fmt"

	"github.com/born-ml/dualfit/internal/dual"
)

// Network describes a fully connected feed-forward network. It is passed to
// MLP as the model's extra data.
type Network struct {
	Layout Layout
	Hidden Activation // Applied after every hidden layer (default: None)
	Output Activation // Applied to the final layer (default: None)
}

// NumParams returns the parameter count of the network.
func (n Network) NumParams() int {
	return n.Layout.NumParams()
}

// MLP evaluates the network described by net with the given parameters.
//
// It panics when the layout does not match len(params) or the input width
// differs from the first layer.
func MLP[S dual.Scalar[S]](params []S, input []float64, net Network) []S {
	net.Layout.MustMatch(len(params))
	if len(input) != net.Layout.Inputs() {
		panic(fmt.Sprintf("nn: network takes %d inputs, got %d", net.Layout.Inputs(), len(input)))
	}

	act := dual.Lift[S](input)
	rest := params
	last := len(net.Layout) - 1
	for layer := 1; layer <= last; layer++ {
		act, rest = Linear(rest, act, net.Layout[layer])

		a := net.Hidden
		if layer == last {
			a = net.Output
		}
		for i := range act {
			act[i] = Activate(a, act[i])
		}
	}
	return act
}
