package grad

import (
	"fmt"
	"sort"
)

// Sparse stores only the non-zero partial derivatives.
//
// Entries live in two parallel buffers (indices, values) allocated once at
// construction with a fixed capacity, plus a size counter. Indices in
// [0, size) are strictly increasing and unique.
//
// Entries whose value becomes exactly zero are pruned, so NonZero always
// reports the number of true non-zeros. This matters for Hybrid, which
// decides when to decay based on that count.
type Sparse struct {
	dim     int
	indices []int
	values  []float64
	size    int
}

// NewSparse creates an all-zero sparse vector of dimension dim able to hold
// up to capacity non-zero entries. Capacity is clamped to [0, dim].
func NewSparse(dim, capacity int) *Sparse {
	checkDimension(dim)
	capacity = min(max(capacity, 0), dim)
	return &Sparse{
		dim:     dim,
		indices: make([]int, capacity),
		values:  make([]float64, capacity),
	}
}

// SparseFrom creates a sparse vector from a dense slice.
//
// Returns false if values holds more non-zeros than capacity; the caller
// must fall back to a dense representation.
func SparseFrom(values []float64, capacity int) (*Sparse, bool) {
	s := NewSparse(len(values), capacity)
	for i, v := range values {
		if v == 0 {
			continue
		}
		if s.size == len(s.indices) {
			return nil, false
		}
		s.indices[s.size] = i
		s.values[s.size] = v
		s.size++
	}
	return s, true
}

// SparseSeed creates a sparse vector with a single entry set.
func SparseSeed(dim, index int, value float64) *Sparse {
	s := NewSparse(dim, dim)
	s.Set(index, value)
	return s
}

// Dim returns the vector dimension.
func (s *Sparse) Dim() int {
	return s.dim
}

// Cap returns the maximum number of non-zero entries.
func (s *Sparse) Cap() int {
	return len(s.indices)
}

// NonZero returns the number of stored entries.
func (s *Sparse) NonZero() int {
	return s.size
}

// Indices returns a copy of the stored indices in increasing order.
func (s *Sparse) Indices() []int {
	out := make([]int, s.size)
	copy(out, s.indices[:s.size])
	return out
}

// search returns the partition point: the first slot whose index is >= i.
func (s *Sparse) search(i int) int {
	return sort.Search(s.size, func(k int) bool { return s.indices[k] >= i })
}

// At returns the entry at index i.
func (s *Sparse) At(i int) float64 {
	checkIndex(i, s.dim)
	pos := s.search(i)
	if pos < s.size && s.indices[pos] == i {
		return s.values[pos]
	}
	return 0
}

// Set stores v at index i.
//
// A new index is inserted at its partition point by shifting the tail of
// both buffers right by one slot. Setting zero removes the entry. Panics if
// the insertion would exceed capacity.
func (s *Sparse) Set(i int, v float64) {
	checkIndex(i, s.dim)
	pos := s.search(i)
	if pos < s.size && s.indices[pos] == i {
		if v == 0 {
			s.remove(pos)
		} else {
			s.values[pos] = v
		}
		return
	}
	if v == 0 {
		return
	}
	if s.size == len(s.indices) {
		panic(fmt.Sprintf("grad: sparse capacity %d exhausted inserting index %d", len(s.indices), i))
	}
	copy(s.indices[pos+1:s.size+1], s.indices[pos:s.size])
	copy(s.values[pos+1:s.size+1], s.values[pos:s.size])
	s.indices[pos] = i
	s.values[pos] = v
	s.size++
}

// has reports whether index i is stored.
func (s *Sparse) has(i int) bool {
	pos := s.search(i)
	return pos < s.size && s.indices[pos] == i
}

func (s *Sparse) remove(pos int) {
	copy(s.indices[pos:s.size-1], s.indices[pos+1:s.size])
	copy(s.values[pos:s.size-1], s.values[pos+1:s.size])
	s.size--
}

// Neg negates every stored entry.
func (s *Sparse) Neg() {
	for k := 0; k < s.size; k++ {
		s.values[k] = -s.values[k]
	}
}

// Scale multiplies every stored entry by k, pruning entries that become zero.
func (s *Sparse) Scale(k float64) {
	for j := 0; j < s.size; j++ {
		s.values[j] *= k
	}
	s.prune()
}

// Accumulate performs s += rhs. Panics if the result does not fit.
func (s *Sparse) Accumulate(rhs Vector) {
	checkDim(s.dim, rhs.Dim())
	if !s.merge(rhs, 1) {
		panic(fmt.Sprintf("grad: sparse capacity %d exhausted by accumulate", len(s.indices)))
	}
}

// Subtract performs s -= rhs. Panics if the result does not fit.
func (s *Sparse) Subtract(rhs Vector) {
	checkDim(s.dim, rhs.Dim())
	if !s.merge(rhs, -1) {
		panic(fmt.Sprintf("grad: sparse capacity %d exhausted by subtract", len(s.indices)))
	}
}

// merge performs s += sign*rhs as a two-pointer merge over both sorted
// index lists. The merge runs from the tail so it can write into the
// receiver's own buffers. When the union of indices exceeds capacity but
// enough entries cancel to fit, the merge goes through a scratch buffer.
// Returns false, leaving s untouched, if the result does not fit.
func (s *Sparse) merge(rhs Vector, sign float64) bool {
	r := asSparse(rhs)
	if r == s {
		s.Scale(1 + sign)
		return true
	}

	union := s.unionSize(r)
	if union <= len(s.indices) {
		s.mergeTail(r, sign, union)
		return true
	}
	if s.mergedSize(r, sign) > len(s.indices) {
		return false
	}

	wide := &Sparse{
		dim:     s.dim,
		indices: make([]int, union),
		values:  make([]float64, union),
		size:    s.size,
	}
	copy(wide.indices, s.indices[:s.size])
	copy(wide.values, s.values[:s.size])
	wide.mergeTail(r, sign, union)

	s.size = copy(s.indices, wide.indices[:wide.size])
	copy(s.values, wide.values[:wide.size])
	return true
}

// mergeTail merges sign*r into s, whose buffers must hold union entries.
func (s *Sparse) mergeTail(r *Sparse, sign float64, union int) {
	i, j, k := s.size-1, r.size-1, union-1
	for j >= 0 {
		switch {
		case i >= 0 && s.indices[i] > r.indices[j]:
			s.indices[k] = s.indices[i]
			s.values[k] = s.values[i]
			i--
		case i >= 0 && s.indices[i] == r.indices[j]:
			s.indices[k] = s.indices[i]
			s.values[k] = s.values[i] + sign*r.values[j]
			i--
			j--
		default:
			s.indices[k] = r.indices[j]
			s.values[k] = sign * r.values[j]
			j--
		}
		k--
	}
	s.size = union
	s.prune()
}

// mergedSize counts the non-zeros s + sign*r would hold.
func (s *Sparse) mergedSize(r *Sparse, sign float64) int {
	i, j, n := 0, 0, 0
	for i < s.size && j < r.size {
		switch {
		case s.indices[i] < r.indices[j]:
			i++
			n++
		case s.indices[i] > r.indices[j]:
			j++
			n++
		default:
			if s.values[i]+sign*r.values[j] != 0 {
				n++
			}
			i++
			j++
		}
	}
	return n + (s.size - i) + (r.size - j)
}

// unionSize counts the distinct indices present in s or r.
func (s *Sparse) unionSize(r *Sparse) int {
	i, j, n := 0, 0, 0
	for i < s.size && j < r.size {
		switch {
		case s.indices[i] < r.indices[j]:
			i++
		case s.indices[i] > r.indices[j]:
			j++
		default:
			i++
			j++
		}
		n++
	}
	return n + (s.size - i) + (r.size - j)
}

// prune drops stored zeros, keeping the remaining entries in order.
func (s *Sparse) prune() {
	w := 0
	for r := 0; r < s.size; r++ {
		if s.values[r] == 0 {
			continue
		}
		s.indices[w] = s.indices[r]
		s.values[w] = s.values[r]
		w++
	}
	s.size = w
}

// Clone returns a deep copy with the same capacity.
func (s *Sparse) Clone() Vector {
	return s.clone()
}

func (s *Sparse) clone() *Sparse {
	c := &Sparse{
		dim:     s.dim,
		indices: make([]int, len(s.indices)),
		values:  make([]float64, len(s.values)),
		size:    s.size,
	}
	copy(c.indices, s.indices[:s.size])
	copy(c.values, s.values[:s.size])
	return c
}

// Slice expands the vector into a dense slice.
func (s *Sparse) Slice() []float64 {
	out := make([]float64, s.dim)
	for k := 0; k < s.size; k++ {
		out[s.indices[k]] = s.values[k]
	}
	return out
}

// asSparse returns v as a *Sparse, converting dense storage on the fly.
func asSparse(v Vector) *Sparse {
	switch t := v.(type) {
	case *Sparse:
		return t
	case *Hybrid:
		if t.sparse != nil {
			return t.sparse
		}
		return asSparse(t.dense)
	default:
		values := v.Slice()
		s, _ := SparseFrom(values, len(values))
		return s
	}
}
