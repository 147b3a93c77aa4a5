package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ticketsPathsDBPath string

var ticketsPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the imported hierarchy paths.",
	Example: `
  # List all imported paths
  logtracker tickets paths
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(ticketsPathsDBPath, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		paths, err := store.ListPaths()
		if err != nil {
			return err
		}

		if len(paths) == 0 {
			fmt.Println("No paths imported yet. Run \"logtracker import\" first.")
			return nil
		}

		for _, row := range paths {
			fmt.Printf("%-14s %s\n", row.TicketKey, row.Path)
		}
		fmt.Printf("Paths: %d\n", len(paths))
		return nil
	},
}

func init() {
	ticketsCmd.AddCommand(ticketsPathsCmd)

	ticketsPathsCmd.Flags().StringVar(&ticketsPathsDBPath, "db", "", "Path to local SQLite database (default from config)")
}
