package grad

import (
	"gonum.org/v1/gonum/floats"
)

// Dense stores every partial derivative explicitly.
//
// Every operation is O(P) regardless of how many entries are zero.
type Dense struct {
	data []float64
}

// NewDense creates an all-zero dense vector of dimension dim.
func NewDense(dim int) *Dense {
	checkDimension(dim)
	return &Dense{data: make([]float64, dim)}
}

// DenseFrom creates a dense vector holding a copy of values.
func DenseFrom(values []float64) *Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return &Dense{data: data}
}

// DenseSeed creates a dense vector with a single entry set.
func DenseSeed(dim, index int, value float64) *Dense {
	d := NewDense(dim)
	d.Set(index, value)
	return d
}

// Dim returns the vector dimension.
func (d *Dense) Dim() int {
	return len(d.data)
}

// At returns the entry at index i.
func (d *Dense) At(i int) float64 {
	checkIndex(i, len(d.data))
	return d.data[i]
}

// Set stores v at index i.
func (d *Dense) Set(i int, v float64) {
	checkIndex(i, len(d.data))
	d.data[i] = v
}

// NonZero counts the entries different from zero.
func (d *Dense) NonZero() int {
	return countNonZero(d.data)
}

// Neg negates every entry.
func (d *Dense) Neg() {
	floats.Scale(-1, d.data)
}

// Accumulate performs d += rhs.
//
// A non-dense rhs is materialized into a dense slice first.
func (d *Dense) Accumulate(rhs Vector) {
	checkDim(len(d.data), rhs.Dim())
	floats.Add(d.data, denseView(rhs))
}

// Subtract performs d -= rhs.
func (d *Dense) Subtract(rhs Vector) {
	checkDim(len(d.data), rhs.Dim())
	floats.Sub(d.data, denseView(rhs))
}

// Scale multiplies every entry by k.
func (d *Dense) Scale(k float64) {
	floats.Scale(k, d.data)
}

// Clone returns a deep copy.
func (d *Dense) Clone() Vector {
	return DenseFrom(d.data)
}

// Slice returns a copy of the entries.
func (d *Dense) Slice() []float64 {
	out := make([]float64, len(d.data))
	copy(out, d.data)
	return out
}

// denseView returns the dense entries of v without copying when v is
// already dense.
func denseView(v Vector) []float64 {
	switch t := v.(type) {
	case *Dense:
		return t.data
	case *Hybrid:
		if t.dense != nil {
			return t.dense.data
		}
		return t.sparse.Slice()
	default:
		return v.Slice()
	}
}
