package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bulkunit/storage"
)

var (
	projectsDBPath    string
	projectsShowUnits int64
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List stored projects and their unit counts",
	Example: `
  # List all stored projects
  bulkunit projects --db ./bulkunit.db

  # Show the units of one project
  bulkunit projects --units 3
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(projectsDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if projectsShowUnits > 0 {
			return printUnits(store, projectsShowUnits)
		}

		projects, err := store.ListProjects()
		if err != nil {
			return err
		}

		if len(projects) == 0 {
			fmt.Println("No projects stored yet.")
			return nil
		}

		for _, p := range projects {
			possession := p.PossessionDate
			if possession == "" {
				possession = "-"
			}
			fmt.Printf("%4d  %-30s  possession: %-10s  units: %d\n", p.ID, p.Name, possession, p.UnitCount)
		}
		return nil
	},
}

func printUnits(store *storage.SQLiteStore, projectID int64) error {
	units, err := store.ListUnitsByProject(projectID)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			return fmt.Errorf("project %d not found", projectID)
		}
		return err
	}

	for _, u := range units {
		fmt.Printf("%4d  %-10s  floor %-3d  %-12s  %-14s  %.2f  %s\n",
			u.ID, u.Name, u.Floor, u.Type, u.Size, u.Price, u.Status)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().StringVar(&projectsDBPath, "db", "./bulkunit.db", "Path to local SQLite database")
	projectsCmd.Flags().Int64Var(&projectsShowUnits, "units", 0, "Show the units of the given project ID")
}
