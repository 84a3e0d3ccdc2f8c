package nn

import (
	"fmt"

	"github.com/born-ml/dualfit/internal/dual"
)

// Linear is a fully connected layer: out[j] = Σ_i w[j][i]·in[i] + b[j].
//
// Parameters are laid out neuron by neuron, each neuron's input weights
// followed by its bias, so the layer reads (len(in)+1)·outputs values from
// params. Linear returns the outputs and the unread remainder of params.
func Linear[S dual.Scalar[S]](params, in []S, outputs int) (out, rest []S) {
	need := (len(in) + 1) * outputs
	if len(params) < need {
		panic(fmt.Sprintf("nn: linear %d→%d needs %d parameters, got %d", len(in), outputs, need, len(params)))
	}

	out = make([]S, outputs)
	for j := range out {
		w := params[j*(len(in)+1) : (j+1)*(len(in)+1)]
		sum := w[len(in)]
		for i, x := range in {
			sum = sum.Add(w[i].Mul(x))
		}
		out[j] = sum
	}
	return out, params[need:]
}
