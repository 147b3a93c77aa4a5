package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ticketsSearchDBPath string

var ticketsSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the imported sub-task registry.",
	Long: `Search imported sub-tasks by fragment of their path, title, or key.

Without a term, every imported sub-task is listed.`,
	Example: `
  # Find sub-tasks mentioning "rollout"
  logtracker tickets search rollout

  # List everything
  logtracker tickets search
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = strings.TrimSpace(args[0])
		}

		store, err := openStore(ticketsSearchDBPath, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		subtasks, err := store.SearchSubtasks(term)
		if err != nil {
			return err
		}

		if len(subtasks) == 0 {
			fmt.Println("No matching sub-tasks found.")
			return nil
		}

		for _, row := range subtasks {
			fmt.Printf("%-14s %-40s %s\n", row.TicketKey, row.Title, row.Path)
		}
		fmt.Printf("Sub-tasks: %d\n", len(subtasks))
		return nil
	},
}

func init() {
	ticketsCmd.AddCommand(ticketsSearchCmd)

	ticketsSearchCmd.Flags().StringVar(&ticketsSearchDBPath, "db", "", "Path to local SQLite database (default from config)")
}
