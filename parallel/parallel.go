// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the worker pool that evaluates examples
// concurrently. A pool can be shared by several trainers:
//
//	pool := parallel.NewPool(parallel.DefaultConfig())
//	defer pool.Close()
//	t := trainer.New(n, model, nil, extra, trainer.Config{Pool: pool})
package parallel

import "github.com/born-ml/dualfit/internal/parallel"

// Config controls parallel execution behavior.
type Config = parallel.Config

// Pool is a fixed set of worker goroutines.
type Pool = parallel.Pool

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config { return parallel.DefaultConfig() }

// NewPool starts a pool.
func NewPool(cfg Config) *Pool { return parallel.NewPool(cfg) }

// Reduce maps chunks of [0, n) on the pool and folds the results in order.
func Reduce[T any](p *Pool, n int, zero T, mapChunk func(lo, hi int) T, combine func(acc, part T) T) T {
	return parallel.Reduce(p, n, zero, mapChunk, combine)
}
