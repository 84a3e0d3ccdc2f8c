// Package parallel provides the worker pool used to evaluate examples
// concurrently.
package parallel

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per chunk to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 16,
	}
}

// Pool is a fixed set of worker goroutines.
//
// The pool is created once and reused by every parallel call. Work is split
// into chunks which idle workers claim through a shared atomic cursor; the
// calling goroutine claims chunks too and returns once all are done.
//
// Close must not run concurrently with For or Reduce.
type Pool struct {
	cfg       Config
	tasks     chan func()
	workers   sync.WaitGroup
	closed    *atomic.Bool
	processed *atomic.Int64
}

// NewPool starts a pool. A disabled config, or one worker, runs everything
// on the calling goroutine.
func NewPool(cfg Config) *Pool {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = 1
	}

	p := &Pool{
		cfg:       cfg,
		closed:    atomic.NewBool(false),
		processed: atomic.NewInt64(0),
	}
	if !p.parallel() {
		return p
	}

	// The caller always helps, so one goroutine fewer is enough.
	p.tasks = make(chan func())
	for i := 0; i < cfg.NumWorkers-1; i++ {
		p.workers.Add(1)
		go p.work()
	}
	return p
}

func (p *Pool) parallel() bool {
	return p.cfg.Enabled && p.cfg.NumWorkers > 1
}

func (p *Pool) work() {
	defer p.workers.Done()
	for task := range p.tasks {
		task()
	}
}

// Workers returns the number of goroutines taking part in a parallel call,
// the caller included.
func (p *Pool) Workers() int {
	if !p.parallel() {
		return 1
	}
	return p.cfg.NumWorkers
}

// Processed returns the number of chunks executed since the pool started.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// Close stops the workers. Later calls run sequentially.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	if p.tasks != nil {
		close(p.tasks)
		p.workers.Wait()
	}
}

// Chunks returns how many chunks n items are split into.
func (p *Pool) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + p.chunkSize(n) - 1) / p.chunkSize(n)
}

func (p *Pool) chunkSize(n int) int {
	if !p.parallel() || p.closed.Load() {
		return max(n, 1)
	}
	return max((n+p.cfg.NumWorkers-1)/p.cfg.NumWorkers, p.cfg.MinChunkSize)
}

// bounds returns the item range [lo, hi) of chunk c.
func (p *Pool) bounds(c, n int) (lo, hi int) {
	size := p.chunkSize(n)
	lo = c * size
	return lo, min(lo+size, n)
}

// For executes f(i) for i in [0, n).
// Falls back to sequential execution if parallelism is disabled or n is too small.
func (p *Pool) For(n int, f func(i int)) {
	p.run(p.Chunks(n), func(c int) {
		lo, hi := p.bounds(c, n)
		for i := lo; i < hi; i++ {
			f(i)
		}
	})
}

// run executes f(c) for every chunk c in [0, chunks) and waits for all of
// them.
func (p *Pool) run(chunks int, f func(c int)) {
	if chunks == 0 {
		return
	}

	cursor := atomic.NewInt64(-1)
	steal := func() {
		for {
			c := int(cursor.Inc())
			if c >= chunks {
				return
			}
			f(c)
			p.processed.Inc()
		}
	}

	if chunks == 1 || !p.parallel() || p.closed.Load() {
		steal()
		return
	}

	var done sync.WaitGroup
	helpers := min(chunks, p.cfg.NumWorkers) - 1
	for i := 0; i < helpers; i++ {
		done.Add(1)
		task := func() {
			defer done.Done()
			steal()
		}
		select {
		case p.tasks <- task:
		default:
			// Every worker is busy; the caller picks up the slack.
			done.Done()
		}
	}
	steal()
	done.Wait()
}

// Reduce splits [0, n) into chunks, maps each chunk with mapChunk on the
// pool and folds the partial results in chunk order with combine. The
// result is deterministic for a given pool configuration. Returns zero
// when n is 0.
func Reduce[T any](p *Pool, n int, zero T, mapChunk func(lo, hi int) T, combine func(acc, part T) T) T {
	chunks := p.Chunks(n)
	parts := make([]T, chunks)
	p.run(chunks, func(c int) {
		lo, hi := p.bounds(c, n)
		parts[c] = mapChunk(lo, hi)
	})

	acc := zero
	for _, part := range parts {
		acc = combine(acc, part)
	}
	return acc
}
