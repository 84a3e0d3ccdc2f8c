package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPool_For(t *testing.T) {
	p := NewPool(DefaultConfig())
	defer p.Close()

	var counter int64
	n := 1000

	p.For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestPool_ForVisitsEveryIndexOnce(t *testing.T) {
	p := NewPool(Config{Enabled: true, NumWorkers: 4, MinChunkSize: 3})
	defer p.Close()

	n := 101
	seen := make([]int32, n)
	p.For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times", i, v)
		}
	}
}

func TestPool_Sequential(t *testing.T) {
	p := NewPool(Config{Enabled: false})
	defer p.Close()

	var counter int64
	p.For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
	if p.Workers() != 1 {
		t.Errorf("Expected 1 worker, got %d", p.Workers())
	}
	if p.Chunks(100) != 1 {
		t.Errorf("Expected 1 chunk, got %d", p.Chunks(100))
	}
}

func TestPool_SmallChunk(t *testing.T) {
	// Small work units fall back to a single chunk.
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}
	p := NewPool(cfg)
	defer p.Close()

	var counter int64
	n := cfg.MinChunkSize - 1

	p.For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
	if p.Chunks(n) != 1 {
		t.Errorf("Expected 1 chunk, got %d", p.Chunks(n))
	}
}

func TestPool_Empty(t *testing.T) {
	p := NewPool(DefaultConfig())
	defer p.Close()

	p.For(0, func(_ int) {
		t.Error("unexpected call")
	})
	got := Reduce(p, 0, 7, func(lo, hi int) int { return hi - lo }, func(a, b int) int { return a + b })
	if got != 7 {
		t.Errorf("Expected zero value 7, got %d", got)
	}
}

func TestReduce_Sum(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false},
		{Enabled: true, NumWorkers: 2, MinChunkSize: 1},
		{Enabled: true, NumWorkers: 8, MinChunkSize: 5},
	} {
		p := NewPool(cfg)

		n := 1000
		got := Reduce(p, n, 0, func(lo, hi int) int {
			s := 0
			for i := lo; i < hi; i++ {
				s += i
			}
			return s
		}, func(acc, part int) int { return acc + part })

		if want := n * (n - 1) / 2; got != want {
			t.Errorf("%+v: Expected %d, got %d", cfg, want, got)
		}
		p.Close()
	}
}

func TestReduce_ChunkOrder(t *testing.T) {
	p := NewPool(Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	defer p.Close()

	got := Reduce(p, 40, []int(nil), func(lo, hi int) []int {
		part := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			part = append(part, i)
		}
		return part
	}, func(acc, part []int) []int { return append(acc, part...) })

	if len(got) != 40 {
		t.Fatalf("Expected 40 items, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Expected %d at %d, got %d", i, i, v)
		}
	}
}

func TestPool_Processed(t *testing.T) {
	p := NewPool(Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	defer p.Close()

	p.For(8, func(_ int) {})
	if got := p.Processed(); got != int64(p.Chunks(8)) {
		t.Errorf("Expected %d chunks processed, got %d", p.Chunks(8), got)
	}
}

func TestPool_CloseTwice(t *testing.T) {
	p := NewPool(Config{Enabled: true, NumWorkers: 3})
	p.Close()
	p.Close()

	// A closed pool still runs work on the caller.
	var counter int64
	p.For(10, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})
	if counter != 10 {
		t.Errorf("Expected 10, got %d", counter)
	}
}

func BenchmarkPool_For(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		p := NewPool(cfg)
		defer p.Close()
		for i := 0; i < b.N; i++ {
			var sum int64
			p.For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		p := NewPool(cfgSeq)
		defer p.Close()
		for i := 0; i < b.N; i++ {
			var sum int64
			p.For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})
}
