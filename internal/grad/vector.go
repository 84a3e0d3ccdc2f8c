// Package grad implements fixed-dimension gradient vectors for forward-mode
// automatic differentiation.
//
// Three storage strategies share the Vector interface:
//   - Dense: a plain slice of P partial derivatives
//   - Sparse: sorted (index, value) pairs in fixed-capacity buffers
//   - Hybrid: starts Sparse and decays to Dense once it fills up
//
// Vectors are created through a Backend so that dual numbers can be built
// without knowing which storage is in use:
//
//	backend := grad.NewHybridBackend(8)
//	seed := backend.Seed(100, 3, 1.0) // ∂x/∂p3 = 1
//	acc := backend.Zeros(100)
//	acc.Accumulate(seed)
//
// All operations panic on violated preconditions (index out of range,
// dimension mismatch). These are programming errors, not runtime conditions.
package grad

import "fmt"

// Vector is a fixed-dimension container of partial derivatives.
//
// Mutating methods (Set, Neg, Accumulate, Subtract, Scale) modify the
// receiver in place. Use Clone to keep the original.
type Vector interface {
	// Dim returns the dimension P fixed at construction.
	Dim() int

	// At returns the partial derivative at index i.
	At(i int) float64

	// Set stores v at index i.
	Set(i int, v float64)

	// NonZero returns the number of stored non-zero entries.
	NonZero() int

	// Neg negates every entry.
	Neg()

	// Accumulate performs self += rhs.
	Accumulate(rhs Vector)

	// Subtract performs self -= rhs.
	Subtract(rhs Vector)

	// Scale performs self *= k.
	Scale(k float64)

	// Clone returns a deep copy with the same storage strategy.
	Clone() Vector

	// Slice converts the vector to a freshly allocated dense slice.
	Slice() []float64
}

func checkIndex(i, dim int) {
	if i < 0 || i >= dim {
		panic(fmt.Sprintf("grad: index %d out of range [0, %d)", i, dim))
	}
}

func checkDim(a, b int) {
	if a != b {
		panic(fmt.Sprintf("grad: dimension mismatch %d != %d", a, b))
	}
}

func checkDimension(dim int) {
	if dim < 0 {
		panic(fmt.Sprintf("grad: negative dimension %d", dim))
	}
}

func countNonZero(values []float64) int {
	n := 0
	for _, v := range values {
		if v != 0 {
			n++
		}
	}
	return n
}
