package cost

import "golang.org/x/exp/constraints"

// Sample builds a dataset of n evenly spaced points x in [from, to] with
// Input {x} and Output {f(x)}. Both ends are included when n > 1.
func Sample[T constraints.Float](f func(T) T, from, to T, n int) Dataset {
	if n <= 0 {
		return nil
	}

	data := make(Dataset, n)
	step := T(0)
	if n > 1 {
		step = (to - from) / T(n-1)
	}
	for i := range data {
		x := from + step*T(i)
		if i == n-1 && n > 1 {
			x = to
		}
		data[i] = DataPoint{
			Input:  []float64{float64(x)},
			Output: []float64{float64(f(x))},
		}
	}
	return data
}
