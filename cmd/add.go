package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"logtracker/entry"
	"logtracker/internal/timeutil"
)

var (
	addDBPath      string
	addProject     string
	addTicket      string
	addTicketTitle string
	addDescription string
	addDuration    int
	addDate        string
	addTime        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a local time entry.",
	Long: `Log one time entry into the local database.

Project and ticket are optional: entries without a ticket are still counted
locally and auto-succeed on sync since there is nothing to mirror. Date and
time default to now.`,
	Example: `
  # One hour on a ticket, right now
  logtracker add --project PROJ --ticket PROJ-123 --duration 60 -m "reviewed rollout plan"

  # Backdated entry without a ticket
  logtracker add --duration 30 --date 2026-08-28 --time 09:30 -m "team standup"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addDuration <= 0 {
			return fmt.Errorf("duration must be a positive number of minutes, got %d", addDuration)
		}

		day, clock := addDate, addTime
		if day == "" || clock == "" {
			now := time.Now()
			defaultDay, defaultClock := timeutil.FormatDayTime(now)
			if day == "" {
				day = defaultDay
			}
			if clock == "" {
				clock = defaultClock
			}
		}
		if _, err := timeutil.ParseDayTime(day, clock); err != nil {
			return err
		}

		store, err := openStore(addDBPath, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddEntry(entry.Entry{
			Date:            day,
			Time:            clock,
			Project:         addProject,
			TicketNumber:    addTicket,
			TicketTitle:     addTicketTitle,
			Description:     addDescription,
			DurationMinutes: addDuration,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Entry %d added: %s %s, %s", id, day, clock, timeutil.MinutesToHHMM(addDuration))
		if addTicket != "" {
			fmt.Printf(", ticket %s", addTicket)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDBPath, "db", "", "Path to local SQLite database (default from config)")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project name")
	addCmd.Flags().StringVarP(&addTicket, "ticket", "t", "", "Ticket key (e.g. PROJ-123)")
	addCmd.Flags().StringVar(&addTicketTitle, "title", "", "Ticket title (stored with the entry)")
	addCmd.Flags().StringVarP(&addDescription, "message", "m", "", "What was done")
	addCmd.Flags().IntVarP(&addDuration, "duration", "d", 0, "Duration in minutes")
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (2006-01-02, default today)")
	addCmd.Flags().StringVar(&addTime, "time", "", "Entry time (15:04, default now)")

	_ = addCmd.MarkFlagRequired("message")
	_ = addCmd.MarkFlagRequired("duration")
}
