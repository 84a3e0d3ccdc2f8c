package serialization

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ParamWriter writes parameter files.
type ParamWriter struct {
	file   *os.File
	closed bool
}

// NewParamWriter creates (or truncates) the parameter file at path.
func NewParamWriter(path string) (*ParamWriter, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create parameter file")
	}

	return &ParamWriter{file: file}, nil
}

// Write writes params, one per line.
func (w *ParamWriter) Write(params []float64) error {
	if w.closed {
		return ErrWriterClosed
	}
	return WriteTo(w.file, params)
}

// Close closes the underlying file.
func (w *ParamWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return errors.Wrap(w.file.Close(), "failed to close parameter file")
}

// WriteTo writes params to writer, one per line, in shortest round-trip
// form. NaN and infinite values are rejected before anything is written.
func WriteTo(writer io.Writer, params []float64) error {
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return errors.Wrapf(ErrNonFinite, "parameter %d", i)
		}
	}

	bw := bufio.NewWriter(writer)
	buf := make([]byte, 0, 32)
	for _, p := range params {
		buf = strconv.AppendFloat(buf[:0], p, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrap(err, "failed to write parameter")
		}
	}
	return errors.Wrap(bw.Flush(), "failed to flush parameters")
}

// SaveFile writes params to the file at path.
func SaveFile(path string, params []float64) (err error) {
	w, err := NewParamWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	return w.Write(params)
}
