package trainer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Translator proposes new parameters from the current ones and a step
// delta. It must not modify its arguments and must return a slice of the
// same length as old.
type Translator func(old, delta []float64) []float64

// AddTranslator returns old + delta.
func AddTranslator(old, delta []float64) []float64 {
	return floats.AddTo(make([]float64, len(old)), old, delta)
}

// ClampTranslator returns a translator that adds delta and clamps every
// parameter into [lo, hi].
func ClampTranslator(lo, hi float64) Translator {
	if lo > hi {
		panic(fmt.Sprintf("trainer: clamp range [%g, %g] is empty", lo, hi))
	}
	return func(old, delta []float64) []float64 {
		out := AddTranslator(old, delta)
		for i, v := range out {
			out[i] = min(max(v, lo), hi)
		}
		return out
	}
}
