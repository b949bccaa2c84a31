package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bulkunit/unit"
)

func TestRenderErrorReport(t *testing.T) {
	t.Parallel()

	errs := []unit.ValidationError{
		{Row: 3, Column: "price", Message: "Invalid price format", Value: "call for price"},
		{Row: 5, Column: "unitNumber", Message: "Duplicate unit number found", Value: "A101"},
	}

	report := RenderErrorReport(errs)
	want := "Row 3: price - Invalid price format (Value: call for price)\n" +
		"Row 5: unitNumber - Duplicate unit number found (Value: A101)\n"
	if report != want {
		t.Fatalf("report = %q, want %q", report, want)
	}
}

func TestRenderErrorReport_Empty(t *testing.T) {
	t.Parallel()

	if report := RenderErrorReport(nil); report != "" {
		t.Fatalf("empty error list must render empty report, got %q", report)
	}
}

func TestWriteErrorReportFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.txt")
	errs := []unit.ValidationError{
		{Row: 2, Column: "type", Message: "Unit type not recognized", Value: "Warehouse"},
	}
	if err := WriteErrorReportFile(path, errs); err != nil {
		t.Fatalf("write report: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "Row 2: type - Unit type not recognized (Value: Warehouse)") {
		t.Fatalf("unexpected report content: %q", content)
	}
}
