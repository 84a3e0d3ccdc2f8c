package grad

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseFrom_Layout(t *testing.T) {
	s, ok := SparseFrom([]float64{1, 4, 0, 0, 0, 2, 4}, 7)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 5, 6}, s.Indices())
	assert.Equal(t, 4, s.NonZero())
	assert.Equal(t, 7, s.Cap())

	_, ok = SparseFrom([]float64{1, 4, 0, 0, 0, 2, 4}, 3)
	assert.False(t, ok, "four non-zeros must not fit capacity three")
}

func TestSparse_SetInRandomOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		ratio := rng.Float64()
		a := randomArray(rng, 32, ratio)
		b := randomArray(rng, 32, ratio)

		x := NewSparse(32, 32)
		y, ok := SparseFrom(b, 32)
		require.True(t, ok)

		for _, k := range rng.Perm(32) {
			x.Set(k, a[k])
			y.Set(k, a[k])
			require.Equal(t, a[k], x.At(k))
			require.True(t, sort.IntsAreSorted(x.Indices()))
		}

		require.Equal(t, a, x.Slice())
		require.Equal(t, a, y.Slice())
		assert.Equal(t, countNonZero(a), x.NonZero())
		assert.Equal(t, countNonZero(a), y.NonZero())
	}
}

func TestSparse_Indexing(t *testing.T) {
	for i := 0; i < 10; i++ {
		arr := make([]float64, 10)
		arr[i] = 1
		x, _ := SparseFrom(arr, 10)

		for j := 0; j < 10; j++ {
			if i == j {
				assert.Equal(t, 1.0, x.At(j))
			} else {
				assert.Equal(t, 0.0, x.At(j))
			}
		}
	}
}

func TestSparse_MergePrunesZeros(t *testing.T) {
	a, _ := SparseFrom([]float64{1, 2, 0, 3}, 4)
	b, _ := SparseFrom([]float64{-1, 0, 5, -3}, 4)

	a.Accumulate(b)

	assert.Equal(t, []float64{0, 2, 5, 0}, a.Slice())
	assert.Equal(t, []int{1, 2}, a.Indices())
	assert.Equal(t, 2, a.NonZero())
}

func TestSparse_SetZeroRemoves(t *testing.T) {
	s := NewSparse(5, 5)
	s.Set(3, 1)
	s.Set(1, 2)
	s.Set(3, 0)

	assert.Equal(t, []int{1}, s.Indices())
	assert.Equal(t, 1, s.NonZero())

	s.Scale(0)
	assert.Equal(t, 0, s.NonZero())
}

func TestSparse_CapacityExhausted(t *testing.T) {
	s := NewSparse(10, 2)
	s.Set(0, 1)
	s.Set(5, 1)
	assert.Panics(t, func() { s.Set(7, 1) })

	// Overwriting an existing entry needs no room.
	assert.NotPanics(t, func() { s.Set(5, 3) })

	other, _ := SparseFrom([]float64{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}, 10)
	assert.Panics(t, func() { s.Accumulate(other) })
	assert.Equal(t, []int{0, 5}, s.Indices(), "failed merge must leave the receiver untouched")
}

func TestSparse_MergeFitsAfterCancellation(t *testing.T) {
	s, _ := SparseFrom([]float64{1, 1, 1, 0, 0, 0}, 3)
	other, _ := SparseFrom([]float64{-1, 0, 0, 2, 0, 0}, 6)

	s.Accumulate(other)
	assert.Equal(t, []float64{0, 1, 1, 2, 0, 0}, s.Slice())
	assert.Equal(t, []int{1, 2, 3}, s.Indices())
	assert.Equal(t, 3, s.Cap())
}

func TestSparse_CapacityClamped(t *testing.T) {
	assert.Equal(t, 4, NewSparse(4, 100).Cap())
	assert.Equal(t, 0, NewSparse(4, -3).Cap())
}
