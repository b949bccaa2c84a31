package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelReader decodes a spreadsheet-native workbook into one sheet per
// worksheet, preserving sheet, row, and column order.
type ExcelReader struct{}

func (r *ExcelReader) Read(input io.Reader) ([]Sheet, error) {
	file, err := excelize.OpenReader(input)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheetNames := file.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, ErrEmptyFile
	}

	sheets := make([]Sheet, 0, len(sheetNames))
	totalRows := 0
	for _, name := range sheetNames {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read rows from sheet %s: %w", name, err)
		}
		totalRows += len(rows)
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}

	if totalRows == 0 {
		return nil, ErrEmptyFile
	}

	return sheets, nil
}
