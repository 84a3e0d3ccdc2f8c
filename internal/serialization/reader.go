package serialization

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Report summarizes how a parameter file was applied.
type Report struct {
	Applied   int          // Parameters overwritten from the file.
	Malformed []*LineError // Lines that did not parse; their parameters are unchanged.
	Missing   int          // Trailing parameters the file did not cover.
	Surplus   int          // Lines beyond the parameter count, ignored.
}

// ReadFrom reads a parameter file from reader into params.
//
// Malformed and surplus lines are logged to logger (log.Default() when nil)
// and reported; they are not errors. The returned error is only set when
// reading fails.
func ReadFrom(reader io.Reader, params []float64, logger *log.Logger) (Report, error) {
	if logger == nil {
		logger = log.Default()
	}

	var report Report
	scanner := bufio.NewScanner(reader)
	line := 0
	for scanner.Scan() {
		line++
		if line > len(params) {
			report.Surplus++
			continue
		}

		text := scanner.Text()
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			le := &LineError{Line: line, Text: text, Details: parseDetails(err)}
			report.Malformed = append(report.Malformed, le)
			logger.Printf("serialization: skipping malformed parameter %s", le)
			continue
		}
		params[line-1] = v
		report.Applied++
	}
	if err := scanner.Err(); err != nil {
		return report, errors.Wrapf(err, "failed to read parameter line %d", line+1)
	}

	if line < len(params) {
		report.Missing = len(params) - line
		logger.Printf("serialization: file has %d lines, %d parameters keep their values", line, report.Missing)
	}
	if report.Surplus > 0 {
		logger.Printf("serialization: ignoring %d surplus lines beyond %d parameters", report.Surplus, len(params))
	}
	return report, nil
}

func parseDetails(err error) string {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	return err.Error()
}

// LoadFile reads the parameter file at path into params.
func LoadFile(path string, params []float64, logger *log.Logger) (Report, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return Report{}, errors.Wrap(err, "failed to open parameter file")
	}
	defer file.Close()

	return ReadFrom(file, params, logger)
}
