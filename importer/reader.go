package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sheet is one tabular sheet decoded from an upload: a display label
// and the full grid of raw cell values in source order.
type Sheet struct {
	Name string
	Rows [][]string
}

// ErrEmptyFile reports a payload that decoded cleanly but contains no
// rows at all.
var ErrEmptyFile = errors.New("file contains no rows")

// Reader decodes a fully buffered payload into sheets. Decoding is
// all-or-nothing: no partial sheets are returned on failure.
type Reader interface {
	Read(r io.Reader) ([]Sheet, error)
}

func ReaderForFormat(format, filename string) (Reader, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "csv":
		return &CSVReader{Label: labelFromFilename(filename)}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat resolves the source format from an explicit value or,
// when empty, from the file extension.
func InferFormat(filename, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return strings.TrimSpace(strings.ToLower(format)), nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", filename)
	}
}

// ReadFile buffers the file at path and decodes it with the reader for
// the given (or inferred) format.
func ReadFile(path, format string) ([]Sheet, error) {
	resolved, err := InferFormat(path, format)
	if err != nil {
		return nil, err
	}

	reader, err := ReaderForFormat(resolved, path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file %s: %w", path, err)
	}
	defer file.Close()

	sheets, err := reader.Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sheets, nil
}

// labelFromFilename derives the implicit sheet label for single-table
// formats: the base name without extension, so a file named
// "Sky Tower - Q4 2028.csv" carries project metadata the same way a
// sheet label does.
func labelFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
