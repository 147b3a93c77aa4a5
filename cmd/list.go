package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"logtracker/entry"
	"logtracker/internal/timeutil"
)

var (
	listDBPath   string
	listDays     int
	listUnsynced bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List local time entries.",
	Long: `List logged time entries, newest first.

Use --days to limit the window and --unsynced to show only entries that have
not been mirrored to Jira yet.`,
	Example: `
  # Everything from the last week
  logtracker list --days 7

  # What the next sync run would push
  logtracker list --unsynced
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(listDBPath, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		var entries []entry.Entry
		if listUnsynced {
			entries, err = store.ListUnsynced()
		} else {
			entries, err = store.ListEntries(listDays)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		totalMinutes := 0
		for _, e := range entries {
			marker := " "
			if e.Synced {
				marker = "s"
			}
			ticket := e.TicketNumber
			if ticket == "" {
				ticket = "-"
			}
			project := e.Project
			if project == "" {
				project = "-"
			}
			fmt.Printf(
				"%5d [%s] %s %s  %s  %-12s %-14s %s\n",
				e.ID,
				marker,
				e.Date,
				e.Time,
				timeutil.MinutesToHHMM(e.DurationMinutes),
				project,
				ticket,
				e.Description,
			)
			totalMinutes += e.DurationMinutes
		}

		fmt.Printf("Entries: %d, Total: %s\n", len(entries), timeutil.MinutesToHHMM(totalMinutes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDBPath, "db", "", "Path to local SQLite database (default from config)")
	listCmd.Flags().IntVar(&listDays, "days", 0, "Limit to the last N days (0 = all)")
	listCmd.Flags().BoolVar(&listUnsynced, "unsynced", false, "Show only entries not yet synced")
}
