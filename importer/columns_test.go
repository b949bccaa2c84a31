package importer

import (
	"reflect"
	"testing"
)

func TestMapColumns_SynonymMatching(t *testing.T) {
	t.Parallel()

	header := []string{"Unit No", "Floor", "Configuration", "Carpet Area", "Base Price", "Offer Price", "Reg Fee", "ROI %", "Payment Plan", "Availability"}

	columns := DefaultSynonyms().MapColumns(header)

	want := ColumnMap{
		FieldUnitNumber:      0,
		FieldFloor:           1,
		FieldType:            2,
		FieldSize:            3,
		FieldPrice:           4,
		FieldDiscountPrice:   5,
		FieldRegistrationFee: 6,
		FieldROIPercentage:   7,
		FieldPaymentPlan:     8,
		FieldStatus:          9,
	}
	if !reflect.DeepEqual(columns, want) {
		t.Fatalf("unexpected column map: %v", columns)
	}
}

func TestMapColumns_IsIdempotent(t *testing.T) {
	t.Parallel()

	header := []string{"Unit Number", "TYPE", "  Price  ", "Notes"}
	synonyms := DefaultSynonyms()

	first := synonyms.MapColumns(header)
	second := synonyms.MapColumns(header)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("column map not stable: %v vs %v", first, second)
	}
}

func TestMapColumns_FirstMatchingHeaderWins(t *testing.T) {
	t.Parallel()

	header := []string{"Price", "Amount"}
	columns := DefaultSynonyms().MapColumns(header)

	if index, ok := columns[FieldPrice]; !ok || index != 0 {
		t.Fatalf("price column = %d (ok=%v), want 0", index, ok)
	}
}

func TestMapColumns_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	// "unit price total" is not in the synonym table; substring
	// matches must not apply.
	header := []string{"unit price total", "Unit", "2bhk type info"}
	columns := DefaultSynonyms().MapColumns(header)

	if index, ok := columns[FieldPrice]; ok {
		t.Fatalf("price mapped to column %d from a non-exact header", index)
	}
	if index, ok := columns[FieldUnitNumber]; !ok || index != 1 {
		t.Fatalf("unitNumber column = %d (ok=%v), want 1", index, ok)
	}
	if _, ok := columns[FieldType]; ok {
		t.Fatalf("type must not match a substring header")
	}
}

func TestMapColumns_CaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	header := []string{"  UNIT NUMBER ", "Unit_Number"}
	columns := DefaultSynonyms().MapColumns(header)

	if index, ok := columns[FieldUnitNumber]; !ok || index != 0 {
		t.Fatalf("unitNumber column = %d (ok=%v), want 0", index, ok)
	}
}

func TestMapColumns_FixtureVocabulary(t *testing.T) {
	t.Parallel()

	synonyms := Synonyms{
		FieldUnitNumber: {"apt"},
		FieldPrice:      {"cost"},
	}
	columns := synonyms.MapColumns([]string{"Apt", "Cost", "Unit Number"})

	if index := columns[FieldUnitNumber]; index != 0 {
		t.Fatalf("unitNumber column = %d, want 0", index)
	}
	if index := columns[FieldPrice]; index != 1 {
		t.Fatalf("price column = %d, want 1", index)
	}
}
