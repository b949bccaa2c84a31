package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateSheetName is the example sheet label in the blank template:
// project name plus possession date, the way the splitter expects it.
const TemplateSheetName = "Sample Project - Q4 2025"

// TemplateHeaders is the canonical header row of the blank template.
var TemplateHeaders = []string{
	"Unit Number",
	"Floor",
	"Type",
	"Area",
	"Price",
	"Discount Price",
	"Registration Fee",
	"ROI",
	"Payment Plan",
	"Status",
}

var templateRows = [][]string{
	{"A101", "1", "2BHK", "950 sq ft", "₹75,00,000", "₹72,00,000", "₹2,00,000", "6.5", "20:80", "Available"},
	{"A102", "1", "3BHK", "1250 sq ft", "₹98,00,000", "", "", "", "", "Available"},
	{"A201", "2", "2BHK", "950 sq ft", "₹76,00,000", "", "", "", "10:90", "Held"},
	{"A202", "2", "3BHK", "1250 sq ft", "₹99,00,000", "", "", "", "", "Sold"},
}

// BuildTemplate creates the blank upload template workbook: one
// example sheet with the canonical headers and a few example rows.
// The caller owns the returned file and must Close it.
func BuildTemplate() (*excelize.File, error) {
	file := excelize.NewFile()

	if err := file.SetSheetName(file.GetSheetName(0), TemplateSheetName); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("rename template sheet: %w", err)
	}

	for col, header := range TemplateHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(TemplateSheetName, cell, header); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("set template header %s: %w", cell, err)
		}
	}

	for i, row := range templateRows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(TemplateSheetName, cell, value); err != nil {
				_ = file.Close()
				return nil, fmt.Errorf("set template value %s: %w", cell, err)
			}
		}
	}

	return file, nil
}

// WriteTemplateFile saves the blank template workbook to path.
func WriteTemplateFile(path string) error {
	file, err := BuildTemplate()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save template %s: %w", path, err)
	}
	return nil
}
