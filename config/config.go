package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyProjectLocation     = "project.location"
	KeyProjectType         = "project.type"
	KeyProjectStatus       = "project.status"
	KeyProjectDeveloper    = "project.developer"
	KeyImportPriceCeiling  = "import.price_ceiling"
	KeyImportAttribution   = "import.row_attribution"
	KeyImportExtraTypes    = "import.extra_types"
	KeyImportExtraSynonyms = "import.extra_synonyms"
)

type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Import  ImportConfig  `mapstructure:"import"`
}

// ProjectConfig holds default project metadata applied when the
// corresponding CLI flags or upload fields are absent.
type ProjectConfig struct {
	Location  string `mapstructure:"location"`
	Type      string `mapstructure:"type" validate:"omitempty,oneof=Residential Commercial Mixed"`
	Status    string `mapstructure:"status" validate:"omitempty,oneof=Upcoming 'Under Construction' 'Ready to Move'"`
	Developer string `mapstructure:"developer"`
}

type ImportConfig struct {
	PriceCeiling float64 `mapstructure:"price_ceiling" validate:"gt=0"`
	// RowAttribution selects validator row numbering: "running"
	// reproduces the historical running-counter report, "source" uses
	// true sheet rows.
	RowAttribution string `mapstructure:"row_attribution" validate:"oneof=running source"`
	// ExtraTypes extends the recognized unit-type vocabulary.
	ExtraTypes []string `mapstructure:"extra_types"`
	// ExtraSynonyms extends the header synonym table, keyed by
	// canonical field name.
	ExtraSynonyms map[string][]string `mapstructure:"extra_synonyms"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# bulkunit configuration
project:
  location: ""
  type: "Residential"
  status: "Under Construction"
  developer: ""

import:
  price_ceiling: 100000000
  row_attribution: running
  extra_types: []
  extra_synonyms: {}
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSynonymFields(cfg.Import.ExtraSynonyms); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyImportPriceCeiling, 100_000_000)
	v.SetDefault(KeyImportAttribution, "running")
	v.SetDefault(KeyImportExtraTypes, []string{})
	v.SetDefault(KeyImportExtraSynonyms, map[string][]string{})
}

func validateSynonymFields(extra map[string][]string) error {
	valid := map[string]bool{
		"unitNumber":      true,
		"floor":           true,
		"type":            true,
		"size":            true,
		"price":           true,
		"discountPrice":   true,
		"registrationFee": true,
		"roiPercentage":   true,
		"paymentPlan":     true,
		"status":          true,
	}
	for field := range extra {
		if !valid[field] {
			return fmt.Errorf("validation failed: import.extra_synonyms key %q is not a canonical field", field)
		}
	}
	return nil
}
