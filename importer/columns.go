package importer

import "strings"

// Field names the canonical unit attributes that raw sheet headers are
// mapped onto.
type Field string

const (
	FieldUnitNumber      Field = "unitNumber"
	FieldFloor           Field = "floor"
	FieldType            Field = "type"
	FieldSize            Field = "size"
	FieldPrice           Field = "price"
	FieldDiscountPrice   Field = "discountPrice"
	FieldRegistrationFee Field = "registrationFee"
	FieldROIPercentage   Field = "roiPercentage"
	FieldPaymentPlan     Field = "paymentPlan"
	FieldStatus          Field = "status"
)

// ColumnMap is the per-sheet lookup from canonical field to zero-based
// column index in the header row. Unmapped fields are absent.
type ColumnMap map[Field]int

// Synonyms is the accepted header spellings per canonical field.
// Matching is exact after normalization (lowercase, trimmed), never
// substring.
type Synonyms map[Field][]string

// DefaultSynonyms returns the header vocabulary used for production
// imports. Tests may supply their own table.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		FieldUnitNumber:      {"unit", "unit no", "unit no.", "unit number", "unit_number", "unitno", "flat no", "flat number"},
		FieldFloor:           {"floor", "floor no", "floor number", "floor_number", "level", "storey"},
		FieldType:            {"type", "unit type", "unit_type", "configuration", "config", "bhk"},
		FieldSize:            {"size", "area", "carpet area", "built up area", "super area", "sqft", "sq ft", "sq. ft."},
		FieldPrice:           {"price", "base price", "unit price", "total price", "amount"},
		FieldDiscountPrice:   {"discount price", "discounted price", "discount_price", "offer price", "special price"},
		FieldRegistrationFee: {"registration fee", "registration", "reg fee", "registration charges", "registration_fee"},
		FieldROIPercentage:   {"roi", "roi %", "roi percentage", "roi_percentage", "rental yield"},
		FieldPaymentPlan:     {"payment plan", "payment_plan", "plan", "payment terms", "payment schedule"},
		FieldStatus:          {"status", "availability", "available"},
	}
}

// MapColumns builds a ColumnMap from one header row. The first header
// matching a field wins; unmatched headers are ignored. Pure function
// of the header row and the table.
func (s Synonyms) MapColumns(header []string) ColumnMap {
	byHeader := make(map[string]Field, len(s)*4)
	for field, spellings := range s {
		for _, spelling := range spellings {
			byHeader[normalizeHeader(spelling)] = field
		}
	}

	columns := make(ColumnMap, len(s))
	for index, cell := range header {
		field, ok := byHeader[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, taken := columns[field]; taken {
			continue
		}
		columns[field] = index
	}
	return columns
}

func normalizeHeader(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
