//go:build dualcheck

package dual

import "fmt"

const checkFinite = true

// verify panics when op produced a NaN or infinite value or gradient.
func verify(d Dual, op string) Dual {
	if !d.IsFinite() {
		panic(fmt.Sprintf("dual: %s diverged: %v", op, d))
	}
	return d
}
