package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"bulkunit/unit"
)

// writeWorkbook creates a temporary .xlsx file from sheet name → rows.
func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]string) string {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	first := true
	for sheetName, rows := range sheets {
		if first {
			if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := file.NewSheet(sheetName); err != nil {
				t.Fatal(err)
			}
		}
		for r, row := range rows {
			for c, value := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := file.SetCellValue(sheetName, cell, value); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := file.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleRows() [][]string {
	return [][]string{
		{"Unit Number", "Floor", "Type", "Area", "Price", "Discount Price", "Registration Fee", "ROI", "Payment Plan", "Status"},
		{"A101", "1", "2BHK", "950 sq ft", "₹75,00,000", "", "", "", "", "Available"},
		{"A102", "1", "3BHK", "1250 sq ft", "₹98,00,000", "₹95,00,000", "", "", "", "Available"},
		{"A201", "2", "2BHK", "950 sq ft", "₹76,00,000", "", "", "", "", "Held"},
		{"A202", "2", "3BHK", "1250 sq ft", "₹99,00,000", "", "", "", "", "Sold"},
	}
}

func TestRun_EndToEndWorkbook(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeWorkbook(t, dir, "inventory.xlsx", map[string][][]string{
		"Sample Project - Q4 2025": sampleRows(),
	})

	result, err := Run([]string{path}, "", Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.ProjectCount != 1 {
		t.Fatalf("project count = %d, want 1", result.ProjectCount)
	}
	batch := result.Projects[0]
	if batch.Name != "Sample Project" || batch.PossessionDate != "Q4 2025" {
		t.Fatalf("batch metadata = (%q, %q)", batch.Name, batch.PossessionDate)
	}
	if len(batch.Units) != 4 {
		t.Fatalf("units = %d, want 4", len(batch.Units))
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no validation errors, got %v", result.Errors)
	}
	if result.TotalUnits != 4 || result.Processed != 4 || result.Skipped != 0 {
		t.Fatalf("counters = %d/%d/%d", result.TotalUnits, result.Processed, result.Skipped)
	}

	if batch.Units[2].Status != unit.StatusHeld {
		t.Errorf("A201 status = %q", batch.Units[2].Status)
	}
	if batch.Units[3].Status != unit.StatusSold {
		t.Errorf("A202 status = %q", batch.Units[3].Status)
	}
	if batch.Units[1].DiscountPrice != "₹95,00,000" {
		t.Errorf("A102 discount price = %q", batch.Units[1].DiscountPrice)
	}
}

func TestRun_MultiSheetWorkbook(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeWorkbook(t, dir, "portfolio.xlsx", map[string][][]string{
		"Sky Tower - Q4 2028": {
			{"Unit Number", "Type", "Price"},
			{"A101", "2BHK", "7500000"},
		},
		"Legend": {
			{"This sheet explains the color coding"},
		},
		"Marina Heights": {
			{"Unit Number", "Type", "Price"},
			{"M101", "Studio", "4200000"},
			{"M102", "1BHK", "5100000"},
		},
	})

	result, err := Run([]string{path}, "", Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.ProjectCount != 2 {
		t.Fatalf("project count = %d, want 2 (legend sheet skipped)", result.ProjectCount)
	}
	if result.TotalUnits != 3 {
		t.Fatalf("total units = %d, want 3", result.TotalUnits)
	}

	names := make(map[string]string, 2)
	for _, batch := range result.Projects {
		names[batch.Name] = batch.PossessionDate
	}
	if possession, ok := names["Sky Tower"]; !ok || possession != "Q4 2028" {
		t.Errorf("Sky Tower possession = %q (ok=%v)", possession, ok)
	}
	if possession, ok := names["Marina Heights"]; !ok || possession != "" {
		t.Errorf("Marina Heights possession = %q (ok=%v)", possession, ok)
	}
}

func TestRun_CSVFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	content := strings.Join([]string{
		"Unit Number,Type,Price,Status",
		"A101,2BHK,7500000,Available",
		"A102,2BHK,7600000,Reserved",
	}, "\n")
	path := filepath.Join(dir, "Lake View - Q1 2027.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Run([]string{path}, "", Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.ProjectCount != 1 {
		t.Fatalf("project count = %d, want 1", result.ProjectCount)
	}
	batch := result.Projects[0]
	if batch.Name != "Lake View" || batch.PossessionDate != "Q1 2027" {
		t.Fatalf("batch metadata = (%q, %q)", batch.Name, batch.PossessionDate)
	}
	if batch.Units[1].Status != unit.StatusHeld {
		t.Errorf("A102 status = %q, want Held", batch.Units[1].Status)
	}
}

func TestRun_StructuralSkipsSeparateFromErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeWorkbook(t, dir, "mixed.xlsx", map[string][][]string{
		"Mixed - Q2 2026": {
			{"Unit Number", "Type", "Price"},
			{"A101", "2BHK", "7500000"},
			{"", "2BHK", "7500000"},
			{"A102", "Warehouse", "7600000"},
		},
	})

	result, err := Run([]string{path}, "", Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.DroppedRows != 1 {
		t.Errorf("dropped rows = %d, want 1", result.DroppedRows)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v, want exactly the type error", result.Errors)
	}
	if result.TotalUnits != 2 || result.Processed != 1 || result.Skipped != 1 {
		t.Errorf("counters = %d/%d/%d", result.TotalUnits, result.Processed, result.Skipped)
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := Run([]string{"inventory.pdf"}, "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestRun_EmptyWorkbook(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	file := excelize.NewFile()
	path := filepath.Join(dir, "empty.xlsx")
	if err := file.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = file.Close()

	_, err := Run([]string{path}, "", Options{})
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestRun_StageTransitions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeWorkbook(t, dir, "inventory.xlsx", map[string][][]string{
		"Sample Project - Q4 2025": sampleRows(),
	})

	stages := make([]Stage, 0, 4)
	_, err := Run([]string{path}, "", Options{OnStage: func(s Stage) { stages = append(stages, s) }})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []Stage{StageUploading, StageParsing, StageValidating}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stage[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestRun_StageErrorOnFailure(t *testing.T) {
	t.Parallel()

	var last Stage
	_, err := Run([]string{"missing.xlsx"}, "", Options{OnStage: func(s Stage) { last = s }})
	if err == nil {
		t.Fatalf("expected error")
	}
	if last != StageError {
		t.Fatalf("last stage = %q, want error", last)
	}
}

func TestRunReader_Upload(t *testing.T) {
	t.Parallel()

	content := "Unit Number,Type,Price\nA101,2BHK,7500000\n"
	result, err := RunReader(strings.NewReader(content), "Sky Tower - Q4 2028.csv", "", Options{})
	if err != nil {
		t.Fatalf("run reader: %v", err)
	}

	if result.ProjectCount != 1 {
		t.Fatalf("project count = %d, want 1", result.ProjectCount)
	}
	if result.Projects[0].Name != "Sky Tower" {
		t.Fatalf("project name = %q", result.Projects[0].Name)
	}
}
