package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"bulkunit/unit"
)

// RenderErrorReport formats the validation errors as the downloadable
// plain-text report, one line per error.
func RenderErrorReport(errs []unit.ValidationError) string {
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&b, "Row %d: %s - %s (Value: %s)\n", e.Row, e.Column, e.Message, e.Value)
	}
	return b.String()
}

// WriteErrorReport streams the report to w.
func WriteErrorReport(w io.Writer, errs []unit.ValidationError) error {
	buffered := bufio.NewWriter(w)
	for _, e := range errs {
		if _, err := fmt.Fprintf(buffered, "Row %d: %s - %s (Value: %s)\n", e.Row, e.Column, e.Message, e.Value); err != nil {
			return fmt.Errorf("write report line: %w", err)
		}
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// WriteErrorReportFile writes the report to path.
func WriteErrorReportFile(path string, errs []unit.ValidationError) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer file.Close()

	return WriteErrorReport(file, errs)
}
