package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bulkunit/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  bulkunit config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("project.location: %s\n", cfg.Project.Location)
			fmt.Printf("project.type: %s\n", cfg.Project.Type)
			fmt.Printf("project.status: %s\n", cfg.Project.Status)
			fmt.Printf("project.developer: %s\n", cfg.Project.Developer)
			fmt.Printf("import.price_ceiling: %.0f\n", cfg.Import.PriceCeiling)
			fmt.Printf("import.row_attribution: %s\n", cfg.Import.RowAttribution)
			fmt.Printf("import.extra_types: %s\n", strings.Join(cfg.Import.ExtraTypes, ", "))
			for field, spellings := range cfg.Import.ExtraSynonyms {
				fmt.Printf("import.extra_synonyms.%s: %s\n", field, strings.Join(spellings, ", "))
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
