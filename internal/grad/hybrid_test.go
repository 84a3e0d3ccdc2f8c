package grad

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHybrid_StartsSparse(t *testing.T) {
	h := NewHybrid(100, 10)
	assert.False(t, h.IsDense())
	assert.Equal(t, 10, h.Criticality())

	seeded := HybridSeed(100, 42, 1, 10)
	assert.False(t, seeded.IsDense())
	assert.Equal(t, 1.0, seeded.At(42))
}

func TestHybridFrom_DenseWhenAboveThreshold(t *testing.T) {
	values := []float64{1, 2, 3, 0, 0, 0}

	assert.False(t, HybridFrom(values, 3).IsDense(), "three non-zeros do not exceed threshold three")
	assert.True(t, HybridFrom(values, 2).IsDense(), "three non-zeros exceed threshold two")

	full := HybridFrom([]float64{1, 2, 3, 4, 5, 6}, 1)
	assert.True(t, full.IsDense(), "overflowing sparse capacity falls back to dense")
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, full.Slice())
}

func TestHybrid_AutoCriticality(t *testing.T) {
	h := NewHybrid(30, AutoCriticality)
	assert.Equal(t, 20, h.Criticality())
	assert.Panics(t, func() { NewHybrid(30, -7) })
}

func TestHybrid_DecaysOnAccumulate(t *testing.T) {
	h := NewHybrid(16, 3)
	for i := 0; i < 3; i++ {
		h.Accumulate(HybridSeed(16, i, 1, 3))
		require.False(t, h.IsDense(), "after %d seeds", i+1)
	}

	h.Accumulate(HybridSeed(16, 7, 1, 3))
	assert.True(t, h.IsDense())
	assert.Equal(t, 4, h.NonZero())
}

func TestHybrid_DecaysOnSet(t *testing.T) {
	h := NewHybrid(8, 2)
	h.Set(0, 1)
	h.Set(1, 1)
	require.False(t, h.IsDense())

	h.Set(1, 3)
	require.False(t, h.IsDense(), "overwrite does not grow the count")

	h.Set(5, 1)
	assert.True(t, h.IsDense())
	assert.Equal(t, []float64{1, 3, 0, 0, 0, 1, 0, 0}, h.Slice())
}

func TestHybrid_MergeOverflowDecays(t *testing.T) {
	// Both operands sit at the threshold, their union overflows capacity.
	a := HybridFrom([]float64{1, 1, 0, 0, 0, 0}, 2)
	b := HybridFrom([]float64{0, 0, 1, 1, 0, 0}, 2)
	require.False(t, a.IsDense())
	require.False(t, b.IsDense())

	a.Accumulate(b)
	assert.True(t, a.IsDense())
	assert.Equal(t, []float64{1, 1, 1, 1, 0, 0}, a.Slice())
}

func TestHybrid_MixedMaterializesDense(t *testing.T) {
	sparse := HybridFrom([]float64{0, 2, 0, 0}, 3)
	dense := HybridFrom([]float64{1, 1, 1, 1}, 3)
	require.True(t, dense.IsDense())

	sparse.Subtract(dense)
	assert.True(t, sparse.IsDense(), "sparse ⊕ dense runs as a dense operation")
	assert.Equal(t, []float64{-1, 1, -1, -1}, sparse.Slice())
}

func TestHybrid_NeverRevertsToSparse(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		h := NewHybrid(32, 4)
		decayed := false

		for step := 0; step < 20; step++ {
			other := HybridFrom(randomArray(rng, 32, 0.9), 4)
			switch rng.Intn(4) {
			case 0:
				h.Accumulate(other)
			case 1:
				h.Subtract(other)
			case 2:
				h.Scale(0)
			default:
				h.Neg()
			}

			if decayed {
				require.True(t, h.IsDense(), "reverted to sparse at step %d", step)
			}
			if h.IsDense() {
				decayed = true
			} else {
				require.LessOrEqual(t, h.NonZero(), h.Criticality())
			}
		}
	}
}

func TestHybrid_CancellingMergeStaysSparse(t *testing.T) {
	values := []float64{1, 1, 1, 1, 0, 0, 0, 0}
	rhs := []float64{-1, -1, 0, 0, 1, 1, 0, 0}
	want := []float64{0, 0, 1, 1, 1, 1, 0, 0}

	sparse, _ := SparseFrom(rhs, 8)
	for name, other := range map[string]Vector{
		"sparse": sparse,
		"hybrid": HybridFrom(rhs, 4),
	} {
		t.Run(name, func(t *testing.T) {
			h := HybridFrom(values, 4)
			h.Accumulate(other)

			assert.Equal(t, want, h.Slice())
			assert.Equal(t, 4, h.NonZero())
			assert.False(t, h.IsDense(), "four non-zeros do not exceed threshold four")
		})
	}

	h := HybridFrom(values, 4)
	h.Subtract(HybridFrom([]float64{1, 1, 0, 0, -1, -1, 0, 0}, 4))
	assert.Equal(t, want, h.Slice())
	assert.False(t, h.IsDense())
}

func TestHybrid_StaysSparseWithinCriticality(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 200; i++ {
		h := NewHybrid(16, 4)
		for step := 0; step < 20 && !h.IsDense(); step++ {
			other := make([]float64, 16)
			for _, j := range rng.Perm(16)[:3] {
				other[j] = float64(rng.Intn(3) - 1)
			}
			for _, j := range h.sparse.Indices() {
				if rng.Intn(2) == 0 {
					other[j] = -h.At(j)
				}
			}
			want := h.Slice()
			for j := range want {
				want[j] += other[j]
			}
			nonZero := 0
			for _, v := range want {
				if v != 0 {
					nonZero++
				}
			}

			rhs, _ := SparseFrom(other, 16)
			h.Accumulate(rhs)
			require.Equal(t, want, h.Slice())
			require.Equal(t, nonZero > 4, h.IsDense(), "non-zero count %d against threshold 4", nonZero)
		}
	}
}

func TestHybrid_DenseStaysDenseWhenEmpty(t *testing.T) {
	h := HybridFrom([]float64{1, 2, 3, 4}, 1)
	require.True(t, h.IsDense())

	h.Subtract(h.Clone())
	assert.Equal(t, 0, h.NonZero())
	assert.True(t, h.IsDense())

	c := h.Clone().(*Hybrid)
	assert.True(t, c.IsDense(), "clone keeps the representation")
}
