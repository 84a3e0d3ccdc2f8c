package grad

import (
	"fmt"
	"strings"
)

// Kind identifies a gradient storage strategy.
type Kind int

// Storage strategies.
const (
	KindDense Kind = iota
	KindSparse
	KindHybrid
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	case KindHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dense":
		return KindDense, nil
	case "sparse":
		return KindSparse, nil
	case "hybrid", "":
		return KindHybrid, nil
	default:
		return 0, fmt.Errorf("grad: unknown backend %q", name)
	}
}

// Backend creates gradient vectors of one storage strategy.
type Backend interface {
	// Kind returns the storage strategy of created vectors.
	Kind() Kind

	// Zeros creates an all-zero vector.
	Zeros(dim int) Vector

	// Seed creates a vector holding value at index and zero elsewhere.
	Seed(dim, index int, value float64) Vector

	// FromSlice creates a vector holding a copy of values.
	FromSlice(values []float64) Vector
}

// DenseBackend creates Dense vectors.
type DenseBackend struct{}

// Kind returns KindDense.
func (DenseBackend) Kind() Kind { return KindDense }

// Zeros creates an all-zero dense vector.
func (DenseBackend) Zeros(dim int) Vector { return NewDense(dim) }

// Seed creates a dense vector with one entry set.
func (DenseBackend) Seed(dim, index int, value float64) Vector {
	return DenseSeed(dim, index, value)
}

// FromSlice creates a dense vector from values.
func (DenseBackend) FromSlice(values []float64) Vector { return DenseFrom(values) }

// SparseBackend creates Sparse vectors with capacity equal to the
// dimension, so they never run out of room.
type SparseBackend struct{}

// Kind returns KindSparse.
func (SparseBackend) Kind() Kind { return KindSparse }

// Zeros creates an all-zero sparse vector.
func (SparseBackend) Zeros(dim int) Vector { return NewSparse(dim, dim) }

// Seed creates a sparse vector with one entry set.
func (SparseBackend) Seed(dim, index int, value float64) Vector {
	return SparseSeed(dim, index, value)
}

// FromSlice creates a sparse vector from values.
func (SparseBackend) FromSlice(values []float64) Vector {
	s, _ := SparseFrom(values, len(values))
	return s
}

// HybridBackend creates Hybrid vectors sharing one criticality threshold.
type HybridBackend struct {
	criticality int
}

// NewHybridBackend creates a hybrid backend. Pass AutoCriticality to use
// two thirds of each vector's dimension.
func NewHybridBackend(criticality int) HybridBackend {
	if criticality < 0 && criticality != AutoCriticality {
		panic(fmt.Sprintf("grad: invalid criticality %d", criticality))
	}
	return HybridBackend{criticality: criticality}
}

// Criticality returns the configured threshold.
func (b HybridBackend) Criticality() int { return b.criticality }

// Kind returns KindHybrid.
func (HybridBackend) Kind() Kind { return KindHybrid }

// Zeros creates an all-zero hybrid vector.
func (b HybridBackend) Zeros(dim int) Vector { return NewHybrid(dim, b.criticality) }

// Seed creates a hybrid vector with one entry set.
func (b HybridBackend) Seed(dim, index int, value float64) Vector {
	return HybridSeed(dim, index, value, b.criticality)
}

// FromSlice creates a hybrid vector from values.
func (b HybridBackend) FromSlice(values []float64) Vector {
	return HybridFrom(values, b.criticality)
}

// NewBackend returns the backend for kind. Criticality only applies to
// KindHybrid.
func NewBackend(kind Kind, criticality int) (Backend, error) {
	switch kind {
	case KindDense:
		return DenseBackend{}, nil
	case KindSparse:
		return SparseBackend{}, nil
	case KindHybrid:
		if criticality < 0 && criticality != AutoCriticality {
			return nil, fmt.Errorf("grad: invalid criticality %d", criticality)
		}
		return HybridBackend{criticality: criticality}, nil
	default:
		return nil, fmt.Errorf("grad: unknown backend kind %d", int(kind))
	}
}
