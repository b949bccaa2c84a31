package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("project:\n  developer: Acme Estates\n"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.Import.PriceCeiling != 100_000_000 {
		t.Errorf("price ceiling = %v", cfg.Import.PriceCeiling)
	}
	if cfg.Import.RowAttribution != "running" {
		t.Errorf("row attribution = %q", cfg.Import.RowAttribution)
	}
	if cfg.Project.Developer != "Acme Estates" {
		t.Errorf("developer = %q", cfg.Project.Developer)
	}
}

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}

func TestValidateYAMLContent_RejectsBadAttribution(t *testing.T) {
	t.Parallel()

	_, err := ValidateYAMLContent([]byte("import:\n  row_attribution: guess\n"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsNonPositiveCeiling(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("import:\n  price_ceiling: 0\n")); err == nil {
		t.Fatalf("expected validation error for zero ceiling")
	}
}

func TestValidateYAMLContent_RejectsUnknownSynonymField(t *testing.T) {
	t.Parallel()

	content := "import:\n  extra_synonyms:\n    tower: [\"tower no\"]\n"
	_, err := ValidateYAMLContent([]byte(content))
	if err == nil || !strings.Contains(err.Error(), "canonical field") {
		t.Fatalf("expected canonical-field error, got %v", err)
	}
}

func TestValidateYAMLContent_ExtraVocabulary(t *testing.T) {
	t.Parallel()

	content := "import:\n  extra_types: [\"Duplex\", \"Row House\"]\n  extra_synonyms:\n    unitNumber: [\"apt no\"]\n"
	cfg, err := ValidateYAMLContent([]byte(content))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(cfg.Import.ExtraTypes) != 2 {
		t.Errorf("extra types = %v", cfg.Import.ExtraTypes)
	}
	if got := cfg.Import.ExtraSynonyms["unitNumber"]; len(got) != 1 || got[0] != "apt no" {
		t.Errorf("extra synonyms = %v", cfg.Import.ExtraSynonyms)
	}
}
