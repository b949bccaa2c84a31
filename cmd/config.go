package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bulkunit configuration file values.",
	Long: `Create and display the bulkunit configuration file.

The configuration stores default project metadata and import tuning:
- project.location / project.type / project.status / project.developer
- import.price_ceiling
- import.row_attribution (running|source)
- import.extra_types / import.extra_synonyms`,
	Example: `
  # Create default config in $HOME/.bulkunit.yaml
  bulkunit config create

  # Show active config and source file
  bulkunit config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
