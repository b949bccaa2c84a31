package importer

import (
	"strconv"
	"strings"

	"bulkunit/unit"
)

// RowAttribution selects how the validator numbers the rows it reports
// errors against.
type RowAttribution string

const (
	// RowAttributionRunningCounter numbers units with a single counter
	// starting at 2 and running monotonically across concatenated
	// batches. This reproduces the historical upload-report behavior:
	// with more than one project sheet the reported row no longer
	// matches the original sheet row.
	RowAttributionRunningCounter RowAttribution = "running"

	// RowAttributionSourceRow reports each unit's true row in its
	// originating sheet.
	RowAttributionSourceRow RowAttribution = "source"
)

// DefaultPriceCeiling is the soft upper bound on unit prices
// (10 crore). Prices above it are flagged, not rejected.
const DefaultPriceCeiling = 100_000_000

// DefaultTypeVocabulary returns the recognized unit-type tokens. A
// unit type must contain one of these, case-insensitively.
func DefaultTypeVocabulary() []string {
	return []string{"1BHK", "2BHK", "3BHK", "4BHK", "5BHK", "Studio", "Penthouse", "Villa", "Plot"}
}

// ValidateOptions tunes the business-rule checks. Zero values fall
// back to the production defaults.
type ValidateOptions struct {
	TypeVocabulary []string
	PriceCeiling   float64
	RowAttribution RowAttribution
}

// Validate runs the advisory business-rule checks over every batch and
// returns one ValidationError per violation, in batch and unit order.
// No check removes a unit: callers decide whether flagged units are
// persisted or skipped.
func Validate(batches []unit.ProjectBatch, opts ValidateOptions) []unit.ValidationError {
	vocabulary := opts.TypeVocabulary
	if len(vocabulary) == 0 {
		vocabulary = DefaultTypeVocabulary()
	}
	ceiling := opts.PriceCeiling
	if ceiling <= 0 {
		ceiling = DefaultPriceCeiling
	}

	errors := make([]unit.ValidationError, 0)
	counter := 2
	for _, batch := range batches {
		seen := make(map[string]struct{}, len(batch.Units))
		for _, u := range batch.Units {
			row := counter
			if opts.RowAttribution == RowAttributionSourceRow {
				row = u.SourceRow
			}
			counter++

			if _, duplicate := seen[u.UnitNumber]; duplicate {
				errors = append(errors, unit.ValidationError{
					Row:     row,
					Column:  string(FieldUnitNumber),
					Message: "Duplicate unit number found",
					Value:   u.UnitNumber,
				})
			} else {
				seen[u.UnitNumber] = struct{}{}
			}

			if price, err := unit.ParseMoney(u.Price); err != nil || price <= 0 {
				errors = append(errors, unit.ValidationError{
					Row:     row,
					Column:  string(FieldPrice),
					Message: "Invalid price format",
					Value:   u.Price,
				})
			} else if price > ceiling {
				errors = append(errors, unit.ValidationError{
					Row:     row,
					Column:  string(FieldPrice),
					Message: "Price seems unreasonably high",
					Value:   u.Price,
				})
			}

			if u.Floor > 0 {
				if implied := ImpliedFloor(u.UnitNumber); implied > 0 && implied != u.Floor {
					errors = append(errors, unit.ValidationError{
						Row:     row,
						Column:  string(FieldFloor),
						Message: "Floor number inconsistent with unit number",
						Value:   strconv.Itoa(u.Floor),
					})
				}
			}

			if !typeRecognized(u.Type, vocabulary) {
				errors = append(errors, unit.ValidationError{
					Row:     row,
					Column:  string(FieldType),
					Message: "Unit type not recognized",
					Value:   u.Type,
				})
			}
		}
	}
	return errors
}

func typeRecognized(unitType string, vocabulary []string) bool {
	lowered := strings.ToLower(unitType)
	for _, token := range vocabulary {
		if strings.Contains(lowered, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
