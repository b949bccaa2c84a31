package cmd

import (
	"testing"

	"bulkunit/importer"
)

func TestResolveRowAttribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    importer.RowAttribution
		wantErr bool
	}{
		{"running", importer.RowAttributionRunningCounter, false},
		{"SOURCE", importer.RowAttributionSourceRow, false},
		{"  source  ", importer.RowAttributionSourceRow, false},
		{"guess", "", true},
	}

	for _, tt := range tests {
		got, err := resolveRowAttribution(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveRowAttribution(%q): expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveRowAttribution(%q): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveRowAttribution(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	if got := firstNonEmpty("", "  ", "Acme"); got != "Acme" {
		t.Errorf("firstNonEmpty = %q, want Acme", got)
	}
	if got := firstNonEmpty("", "  "); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
	if got := firstNonEmpty(" flag ", "config"); got != "flag" {
		t.Errorf("firstNonEmpty = %q, want trimmed flag value", got)
	}
}

func TestBaseNames(t *testing.T) {
	t.Parallel()

	got := baseNames([]string{"/tmp/uploads/inventory.xlsx", "towerB.csv"})
	if len(got) != 2 || got[0] != "inventory.xlsx" || got[1] != "towerB.csv" {
		t.Errorf("baseNames = %v", got)
	}
}
