package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bulkunit/output"
)

var templateOutput string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a blank upload template workbook",
	Long: `Write an example .xlsx workbook with the canonical header row and a few
example unit rows. The sheet label shows how a project name and
possession date are encoded.`,
	Example: `
  # Write the template to the default path
  bulkunit template

  # Write to an explicit path
  bulkunit template --output ./unit-upload-template.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.WriteTemplateFile(templateOutput); err != nil {
			return err
		}
		fmt.Printf("Template written to %s\n", templateOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "./unit-upload-template.xlsx", "Output path for the template workbook")
}
