package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dualfit/internal/dual"
)

// LayerWeights is one layer of a trained network in matrix form.
type LayerWeights struct {
	W *mat.Dense    // outputs×inputs
	B *mat.VecDense // outputs
}

// Weights splits flat parameters into per-layer weight matrices and bias
// vectors following the neuron-by-neuron layout Linear reads. It panics when
// the layout does not match len(params).
func Weights(layout Layout, params []float64) []LayerWeights {
	layout.MustMatch(len(params))

	layers := make([]LayerWeights, 0, len(layout)-1)
	rest := params
	for l := 1; l < len(layout); l++ {
		in, out := layout[l-1], layout[l]
		w := mat.NewDense(out, in, nil)
		b := mat.NewVecDense(out, nil)
		for j := 0; j < out; j++ {
			row := rest[j*(in+1) : (j+1)*(in+1)]
			w.SetRow(j, row[:in])
			b.SetVec(j, row[in])
		}
		rest = rest[(in+1)*out:]
		layers = append(layers, LayerWeights{W: w, B: b})
	}
	return layers
}

// Forward evaluates the layers on input with matrix products, applying
// hidden after every layer but the last and output after the last.
func Forward(layers []LayerWeights, input []float64, hidden, output Activation) []float64 {
	act := mat.NewVecDense(len(input), append([]float64(nil), input...))
	for l, lw := range layers {
		r, _ := lw.W.Dims()
		next := mat.NewVecDense(r, nil)
		next.MulVec(lw.W, act)
		next.AddVec(next, lw.B)

		a := hidden
		if l == len(layers)-1 {
			a = output
		}
		for i := 0; i < r; i++ {
			next.SetVec(i, float64(Activate(a, dual.Float(next.AtVec(i)))))
		}
		act = next
	}
	return act.RawVector().Data
}
