package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bulkunit/config"
	"bulkunit/importer"
	"bulkunit/output"
	"bulkunit/storage"
)

var (
	importInputs      []string
	importFormat      string
	importDBPath      string
	importLocation    string
	importType        string
	importStatus      string
	importDeveloper   string
	importCreatedBy   string
	importReport      string
	importAttribution string
	importDryRun      bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import unit inventory workbooks into a local SQLite database",
	Long: `Read inventory files, split each sheet into a project batch, normalize
rows into canonical unit records, run business-rule validation, and
persist projects and units in SQLite.

Sheet labels carry project metadata: "Sky Tower - Q4 2028" names the
project and its possession date. Rows missing unit number, type, or
price are skipped silently; business-rule findings (duplicates, bad
prices, floor mismatches, unrecognized types) are advisory and reported,
but never remove a unit from the batch. One upload-log row records each
invocation.

Project location/type/status/developer come from flags, falling back to
the configuration's project section.`,
	Example: `
  # Import a multi-project workbook
  bulkunit import -i inventory.xlsx --developer "Acme Estates" --created-by agent-7 --db ./bulkunit.db

  # Import several files at once
  bulkunit import -i towerA.xlsx -i towerB.csv

  # Write the plain-text validation report next to the summary
  bulkunit import -i inventory.xlsx --report ./errors.txt

  # Report true sheet rows instead of the legacy running counter
  bulkunit import -i inventory.xlsx --row-attribution source

  # Validate without touching the database
  bulkunit import -i inventory.xlsx --dry-run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		opts := importer.OptionsFromConfig(*cfg)
		if strings.TrimSpace(importAttribution) != "" {
			opts.RowAttribution, err = resolveRowAttribution(importAttribution)
			if err != nil {
				return err
			}
		}
		opts.OnStage = func(stage importer.Stage) {
			fmt.Printf("[%s]\n", stage)
		}

		result, err := importer.Run(importInputs, importFormat, opts)
		if err != nil {
			return err
		}

		if importReport != "" {
			if err := output.WriteErrorReportFile(importReport, result.Errors); err != nil {
				return err
			}
		}

		if importDryRun {
			opts.OnStage(importer.StageComplete)
			printImportSummary(result, nil)
			return nil
		}

		opts.OnStage(importer.StageSaving)
		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		meta := storage.ProjectMeta{
			Location:  firstNonEmpty(importLocation, cfg.Project.Location),
			Type:      firstNonEmpty(importType, cfg.Project.Type),
			Status:    firstNonEmpty(importStatus, cfg.Project.Status),
			Developer: firstNonEmpty(importDeveloper, cfg.Project.Developer),
			CreatedBy: importCreatedBy,
		}

		summary, err := store.SaveBatches(result.Projects, meta)
		if saveErr := recordUploadLog(store, result, summary, err); saveErr != nil {
			fmt.Printf("Warning: upload log not recorded: %v\n", saveErr)
		}
		if err != nil {
			return err
		}

		opts.OnStage(importer.StageComplete)
		printImportSummary(result, summary)
		return nil
	},
}

func printImportSummary(result *importer.Result, summary *storage.SaveSummary) {
	fmt.Printf("Import completed. Files: %d, Projects: %d, Units: %d, Processed: %d, Skipped: %d, Rows dropped: %d\n",
		result.FilesProcessed,
		result.ProjectCount,
		result.TotalUnits,
		result.Processed,
		result.Skipped,
		result.DroppedRows,
	)
	for _, e := range result.Errors {
		fmt.Printf("  Row %d: %s - %s (Value: %s)\n", e.Row, e.Column, e.Message, e.Value)
	}
	if summary != nil {
		fmt.Printf("Persisted. Projects created: %d, Units inserted: %d, Units failed: %d\n",
			summary.ProjectsCreated,
			summary.UnitsInserted,
			summary.UnitsFailed,
		)
	}
}

func recordUploadLog(store *storage.SQLiteStore, result *importer.Result, summary *storage.SaveSummary, saveErr error) error {
	status := "success"
	message := ""
	if saveErr != nil {
		status = "failed"
		message = saveErr.Error()
	}

	_, err := store.InsertUploadLog(storage.UploadLog{
		FileName:     strings.Join(baseNames(importInputs), ", "),
		ProjectCount: result.ProjectCount,
		UnitCount:    result.TotalUnits,
		ErrorCount:   len(result.Errors),
		Status:       status,
		Message:      message,
		CreatedBy:    importCreatedBy,
	})
	return err
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names
}

func resolveRowAttribution(value string) (importer.RowAttribution, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "running":
		return importer.RowAttributionRunningCounter, nil
	case "source":
		return importer.RowAttributionSourceRow, nil
	default:
		return "", fmt.Errorf("invalid row attribution %q (supported: running|source)", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", "./bulkunit.db", "Path to local SQLite database")
	importCmd.Flags().StringVar(&importLocation, "location", "", "Declared project location (overrides config project.location)")
	importCmd.Flags().StringVar(&importType, "type", "", "Declared project type (overrides config project.type)")
	importCmd.Flags().StringVar(&importStatus, "status", "", "Declared project status (overrides config project.status)")
	importCmd.Flags().StringVar(&importDeveloper, "developer", "", "Developer reference (overrides config project.developer)")
	importCmd.Flags().StringVar(&importCreatedBy, "created-by", "", "Identity recorded on created projects and the upload log")
	importCmd.Flags().StringVar(&importReport, "report", "", "Write the plain-text validation report to this path")
	importCmd.Flags().StringVar(&importAttribution, "row-attribution", "", "Validator row numbering: running|source (overrides config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate only; do not persist")

	_ = importCmd.MarkFlagRequired("input")
}
