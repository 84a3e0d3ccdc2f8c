package nn

import (
	"math"
	"math/rand"
)

// Xavier (Glorot) initialization for a network's parameters.
//
// Weights of every layer are drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))); biases start
// at zero. The result follows the parameter layout read by MLP.
//
// A nil rng uses the global source.
func Xavier(layout Layout, rng *rand.Rand) []float64 {
	uniform := rand.Float64 //nolint:gosec // Using math/rand for weight initialization (not security-critical)
	if rng != nil {
		uniform = rng.Float64
	}

	params := make([]float64, 0, layout.NumParams())
	for l := 1; l < len(layout); l++ {
		fanIn, fanOut := layout[l-1], layout[l]
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		for range fanOut {
			for range fanIn {
				params = append(params, (uniform()*2.0-1.0)*bound)
			}
			params = append(params, 0)
		}
	}
	return params
}
