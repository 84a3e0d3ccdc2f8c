package serialization

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrWriterClosed = errors.New("writer is closed")
	ErrNonFinite    = errors.New("parameter is NaN or infinite")
)

// LineError describes a line of a parameter file that could not be applied.
type LineError struct {
	Line    int    // 1-based line number
	Text    string // Raw line content
	Details string // Parser message
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", e.Line, e.Text, e.Details)
}
