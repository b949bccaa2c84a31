package importer

import (
	"strings"

	"bulkunit/unit"
)

// NormalizeRow converts one raw data row into a ParsedUnit. Rows
// missing any of unitNumber, type, or price are structural skips: the
// second return value is false and no error record is produced.
// Malformed individual cells never fail the row; they degrade to
// defaults.
func NormalizeRow(row []string, columns ColumnMap, rowNumber int) (*unit.ParsedUnit, bool) {
	unitNumber := cellValue(row, columns, FieldUnitNumber)
	unitType := cellValue(row, columns, FieldType)
	price := cellValue(row, columns, FieldPrice)
	if unitNumber == "" || unitType == "" || price == "" {
		return nil, false
	}

	size := cellValue(row, columns, FieldSize)
	if size == "" {
		size = "N/A"
	}

	parsed := &unit.ParsedUnit{
		UnitNumber:      unitNumber,
		Floor:           inferFloor(cellValue(row, columns, FieldFloor), unitNumber),
		Type:            unitType,
		Size:            size,
		Price:           price,
		DiscountPrice:   cellValue(row, columns, FieldDiscountPrice),
		RegistrationFee: cellValue(row, columns, FieldRegistrationFee),
		ROIPercentage:   cellValue(row, columns, FieldROIPercentage),
		PaymentPlan:     cellValue(row, columns, FieldPaymentPlan),
		Status:          unit.ParseStatus(cellValue(row, columns, FieldStatus)),
		SourceRow:       rowNumber,
	}
	return parsed, true
}

// cellValue resolves a canonical field to its trimmed raw cell value,
// or "" when the field is unmapped or the row is short.
func cellValue(row []string, columns ColumnMap, field Field) string {
	index, ok := columns[field]
	if !ok || index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// inferFloor resolves the floor number for a unit. An explicit floor
// cell wins: its first digit run is the floor. Otherwise the floor is
// implied by the unit number under the hundreds convention ("A101" is
// floor 1, "A201" floor 2). Falls back to 0 when neither yields a
// number.
func inferFloor(floorCell, unitNumber string) int {
	if floorCell != "" {
		if digits, ok := firstDigitRun(floorCell); ok {
			return digits
		}
	}
	return ImpliedFloor(unitNumber)
}

// ImpliedFloor derives the floor encoded in a unit number: the first
// digit run divided by 100. Returns 0 when the unit number carries no
// digits.
func ImpliedFloor(unitNumber string) int {
	digits, ok := firstDigitRun(unitNumber)
	if !ok {
		return 0
	}
	return digits / 100
}

// firstDigitRun extracts the first contiguous run of decimal digits in
// s as an integer.
func firstDigitRun(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(s[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(s[start:])
	}
	return 0, false
}

func parseDigits(s string) (int, bool) {
	value := 0
	for _, r := range s {
		value = value*10 + int(r-'0')
	}
	return value, true
}
