package nn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Layout lists the widths of a fully connected network, input first:
// {196, 30, 20, 10} has 196 inputs, two hidden layers and 10 outputs.
type Layout []int

// Validate checks that the layout has an input and an output layer, all of
// positive width.
func (l Layout) Validate() error {
	if len(l) < 2 {
		return errors.Errorf("layout needs at least 2 layers, got %d", len(l))
	}
	for i, w := range l {
		if w <= 0 {
			return errors.Errorf("layer %d has width %d", i, w)
		}
	}
	return nil
}

// NumParams returns the number of weights and biases the layout implies:
// (in+1)·out for every pair of adjacent layers.
func (l Layout) NumParams() int {
	n := 0
	for i := 1; i < len(l); i++ {
		n += (l[i-1] + 1) * l[i]
	}
	return n
}

// Inputs returns the input width.
func (l Layout) Inputs() int {
	if len(l) == 0 {
		return 0
	}
	return l[0]
}

// Outputs returns the output width.
func (l Layout) Outputs() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1]
}

// MustMatch panics unless the layout is valid and implies exactly
// numParams parameters.
func (l Layout) MustMatch(numParams int) {
	if err := l.Validate(); err != nil {
		panic("nn: " + err.Error())
	}
	if want := l.NumParams(); want != numParams {
		panic(fmt.Sprintf("nn: layout %v needs %d parameters, got %d", []int(l), want, numParams))
	}
}
