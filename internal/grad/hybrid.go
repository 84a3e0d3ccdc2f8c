package grad

import "fmt"

// AutoCriticality selects a criticality of two thirds of the vector
// dimension when passed to NewHybrid or NewHybridBackend.
const AutoCriticality = -1

// Hybrid is a tagged union of Sparse and Dense storage.
//
// A Hybrid starts Sparse. After every mutating operation its non-zero count
// is checked against the criticality threshold; once it exceeds the
// threshold the vector decays to Dense. Decay is one-way: no operation
// converts a Dense Hybrid back to Sparse, whatever its later sparsity.
//
// Exactly one of dense and sparse is non-nil at any time.
type Hybrid struct {
	dim         int
	criticality int
	dense       *Dense
	sparse      *Sparse
}

// NewHybrid creates an all-zero hybrid vector.
func NewHybrid(dim, criticality int) *Hybrid {
	checkDimension(dim)
	c := resolveCriticality(dim, criticality)
	return &Hybrid{
		dim:         dim,
		criticality: c,
		sparse:      NewSparse(dim, sparseCapacity(dim, c)),
	}
}

// HybridFrom creates a hybrid vector from a dense slice.
//
// The vector starts Dense when values holds more non-zeros than the
// threshold.
func HybridFrom(values []float64, criticality int) *Hybrid {
	dim := len(values)
	c := resolveCriticality(dim, criticality)
	h := &Hybrid{dim: dim, criticality: c}
	if s, ok := SparseFrom(values, sparseCapacity(dim, c)); ok {
		h.sparse = s
	} else {
		h.dense = DenseFrom(values)
	}
	h.settle()
	return h
}

// HybridSeed creates a hybrid vector with a single entry set.
func HybridSeed(dim, index int, value float64, criticality int) *Hybrid {
	h := NewHybrid(dim, criticality)
	h.Set(index, value)
	return h
}

func resolveCriticality(dim, criticality int) int {
	if criticality == AutoCriticality {
		return dim * 2 / 3
	}
	if criticality < 0 {
		panic(fmt.Sprintf("grad: invalid criticality %d", criticality))
	}
	return criticality
}

// sparseCapacity leaves room for one entry above the threshold, which is
// enough to detect that decay is due.
func sparseCapacity(dim, criticality int) int {
	if criticality >= dim {
		return dim
	}
	return criticality + 1
}

// IsDense reports whether the vector has decayed to dense storage.
func (h *Hybrid) IsDense() bool {
	return h.dense != nil
}

// Criticality returns the non-zero count above which the vector decays.
func (h *Hybrid) Criticality() int {
	return h.criticality
}

func (h *Hybrid) active() Vector {
	if h.dense != nil {
		return h.dense
	}
	return h.sparse
}

// decay converts the sparse representation to dense.
func (h *Hybrid) decay() {
	if h.dense != nil {
		return
	}
	h.dense = DenseFrom(h.sparse.Slice())
	h.sparse = nil
}

// settle runs the decay check.
func (h *Hybrid) settle() {
	if h.sparse != nil && h.sparse.NonZero() > h.criticality {
		h.decay()
	}
}

// Dim returns the vector dimension.
func (h *Hybrid) Dim() int {
	return h.dim
}

// At returns the entry at index i.
func (h *Hybrid) At(i int) float64 {
	return h.active().At(i)
}

// Set stores v at index i, decaying first if the sparse buffers are full.
func (h *Hybrid) Set(i int, v float64) {
	checkIndex(i, h.dim)
	if h.sparse != nil && v != 0 && h.sparse.NonZero() == h.sparse.Cap() && !h.sparse.has(i) {
		h.decay()
	}
	h.active().Set(i, v)
	h.settle()
}

// NonZero returns the number of non-zero entries of the active storage.
func (h *Hybrid) NonZero() int {
	return h.active().NonZero()
}

// Neg negates every entry.
func (h *Hybrid) Neg() {
	h.active().Neg()
	h.settle()
}

// Scale multiplies every entry by k.
func (h *Hybrid) Scale(k float64) {
	h.active().Scale(k)
	h.settle()
}

// Accumulate performs h += rhs.
func (h *Hybrid) Accumulate(rhs Vector) {
	checkDim(h.dim, rhs.Dim())
	h.apply(rhs, 1)
}

// Subtract performs h -= rhs.
func (h *Hybrid) Subtract(rhs Vector) {
	checkDim(h.dim, rhs.Dim())
	h.apply(rhs, -1)
}

// apply performs h += sign*rhs.
//
// Sparse ⊕ Sparse merges in place; any pairing that involves dense storage
// materializes the sparse side as dense first.
func (h *Hybrid) apply(rhs Vector, sign float64) {
	if r, ok := rhs.(*Hybrid); ok {
		rhs = r.active()
	}

	if h.sparse != nil {
		if rs, ok := rhs.(*Sparse); ok && h.sparse.merge(rs, sign) {
			h.settle()
			return
		}
		h.decay()
	}

	if sign > 0 {
		h.dense.Accumulate(rhs)
	} else {
		h.dense.Subtract(rhs)
	}
	h.settle()
}

// Clone returns a deep copy in the same representation.
func (h *Hybrid) Clone() Vector {
	c := &Hybrid{dim: h.dim, criticality: h.criticality}
	if h.dense != nil {
		c.dense = DenseFrom(h.dense.data)
	} else {
		c.sparse = h.sparse.clone()
	}
	return c
}

// Slice expands the vector into a dense slice.
func (h *Hybrid) Slice() []float64 {
	return h.active().Slice()
}
