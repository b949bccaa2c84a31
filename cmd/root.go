package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bulkunit/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bulkunit",
	Short: "Import, validate, and store real-estate unit inventory from spreadsheet uploads.",
	Long: `
**********************************************
*                BULK UNIT                   *
**********************************************

This CLI reads unit inventory workbooks (Excel, CSV), splits sheets into
project batches, normalizes rows into canonical unit records, runs the
business-rule validation, and persists projects and units in a local
SQLite database.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls (one project per sheet)
- CSV: .csv (single project, label taken from the file name)
`,
	Example: `
  # Create configuration file
  bulkunit config create

  # Import a multi-project workbook
  bulkunit import -i inventory.xlsx --developer "Acme Estates" --created-by agent-7

  # Import a CSV inventory and write the validation report
  bulkunit import -i "Sky Tower - Q4 2028.csv" --report ./errors.txt

  # Validate only, without persisting
  bulkunit import -i inventory.xlsx --dry-run

  # Download a blank upload template
  bulkunit template --output ./template.xlsx

  # List stored projects
  bulkunit projects --db ./bulkunit.db

  # Start the local upload API
  bulkunit serve --port 8080 --db ./bulkunit.db
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.bulkunit.yaml, then ./.bulkunit.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "import", "serve":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".bulkunit" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bulkunit")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: bulkunit config create")
	}
}
