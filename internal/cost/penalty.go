package cost

import "github.com/born-ml/dualfit/internal/dual"

// Penalty is a regularization term over the parameters, added to the mean
// dataset cost.
type Penalty interface {
	Dual(params []dual.Dual) dual.Dual
	Float(params []float64) float64
}

// L1Penalty adds Weight·Σ|p| (lasso).
type L1Penalty struct {
	Weight float64
}

// Dual implements Penalty.
func (l L1Penalty) Dual(params []dual.Dual) dual.Dual {
	sum := dual.New(0)
	for _, p := range params {
		sum = sum.Add(p.Abs())
	}
	return sum.MulF(l.Weight)
}

// Float implements Penalty.
func (l L1Penalty) Float(params []float64) float64 {
	var sum float64
	for _, p := range params {
		if p < 0 {
			sum -= p
		} else {
			sum += p
		}
	}
	return l.Weight * sum
}

// L2Penalty adds Weight·Σp² (ridge).
type L2Penalty struct {
	Weight float64
}

// Dual implements Penalty.
func (l L2Penalty) Dual(params []dual.Dual) dual.Dual {
	sum := dual.New(0)
	for _, p := range params {
		sum = sum.Add(p.Square())
	}
	return sum.MulF(l.Weight)
}

// Float implements Penalty.
func (l L2Penalty) Float(params []float64) float64 {
	var sum float64
	for _, p := range params {
		sum += p * p
	}
	return l.Weight * sum
}
