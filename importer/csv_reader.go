package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader decodes a single-table delimited-text payload into one
// sheet. Label is the implicit sheet label, usually the file name
// stem.
type CSVReader struct {
	Label string
}

func (r *CSVReader) Read(input io.Reader) ([]Sheet, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1

	rows := make([][]string, 0, 128)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	label := r.Label
	if label == "" {
		label = "Sheet1"
	}

	return []Sheet{{Name: label, Rows: rows}}, nil
}
