// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grad provides the gradient vectors carried by dual numbers.
//
// Three storage strategies share the Vector interface:
//   - Dense: a plain []float64, best when most partials are non-zero
//   - Sparse: sorted (index, value) pairs in a fixed-capacity buffer
//   - Hybrid: starts sparse and decays to dense, once and for good, when
//     the non-zero count exceeds its criticality threshold
//
// Example:
//
//	backend := grad.NewHybridBackend(grad.AutoCriticality)
//	g := backend.Seed(1000, 42, 1) // one non-zero entry, stored sparse
//	g.Accumulate(backend.Seed(1000, 7, 2))
//	g.Slice()[7] // 2
package grad

import "github.com/born-ml/dualfit/internal/grad"

// Vector is a gradient vector of fixed dimension.
type Vector = grad.Vector

// Dense stores every component.
type Dense = grad.Dense

// Sparse stores non-zero components in sorted order.
type Sparse = grad.Sparse

// Hybrid switches from Sparse to Dense storage as it fills.
type Hybrid = grad.Hybrid

// Backend creates vectors of one storage strategy.
type Backend = grad.Backend

// DenseBackend creates Dense vectors.
type DenseBackend = grad.DenseBackend

// SparseBackend creates Sparse vectors with capacity equal to the dimension.
type SparseBackend = grad.SparseBackend

// HybridBackend creates Hybrid vectors with a fixed criticality.
type HybridBackend = grad.HybridBackend

// Kind identifies a storage strategy.
type Kind = grad.Kind

// Storage strategies.
const (
	KindDense  = grad.KindDense
	KindSparse = grad.KindSparse
	KindHybrid = grad.KindHybrid
)

// AutoCriticality sets the Hybrid threshold to two thirds of the dimension.
const AutoCriticality = grad.AutoCriticality

// NewDense creates a zero Dense vector.
func NewDense(dim int) *Dense { return grad.NewDense(dim) }

// NewSparse creates an empty Sparse vector holding at most capacity
// non-zeros.
func NewSparse(dim, capacity int) *Sparse { return grad.NewSparse(dim, capacity) }

// NewHybrid creates an empty Hybrid vector.
func NewHybrid(dim, criticality int) *Hybrid { return grad.NewHybrid(dim, criticality) }

// NewHybridBackend returns a backend creating Hybrid vectors.
func NewHybridBackend(criticality int) HybridBackend { return grad.NewHybridBackend(criticality) }

// NewBackend returns the backend for kind.
func NewBackend(kind Kind, criticality int) (Backend, error) {
	return grad.NewBackend(kind, criticality)
}

// ParseKind parses "dense", "sparse" or "hybrid".
func ParseKind(name string) (Kind, error) { return grad.ParseKind(name) }
