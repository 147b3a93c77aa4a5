package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"logtracker/config"
	"logtracker/jira"
	"logtracker/syncer"
)

var (
	syncDBPath      string
	syncConcurrency int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push unsynced time entries to Jira as worklogs.",
	Long: `Push every unsynced local entry to Jira as a worklog.

Entries without a ticket are marked synced without a remote call. Each
ticketed entry is pushed exactly once; a failed push is reported and the
entry stays unsynced for the next run. After all pushes complete, the
succeeded subset is marked synced in one atomic step.

Interrupting the run (Ctrl-C) skips the entries not yet attempted; they stay
unsynced and are simply missing from the report.`,
	Example: `
  # Push everything unsynced
  logtracker sync

  # Sequential pushes instead of the configured worker pool
  logtracker sync --concurrency 1
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		client, err := newJiraClient(cfg)
		if err != nil {
			return err
		}

		store, err := openStore(syncDBPath, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := client.CheckAuth(ctx); err != nil {
			if jira.IsAuth(err) {
				return fmt.Errorf("jira rejected the configured credentials, run \"logtracker config show\" and update jira.email/jira.token: %w", err)
			}
			return fmt.Errorf("jira auth check: %w", err)
		}

		concurrency := cfg.Sync.Concurrency
		if cmd.Flags().Changed("concurrency") {
			concurrency = syncConcurrency
		}

		service := syncer.NewService(store, client, concurrency)
		report, err := service.Run(ctx)
		if report != nil {
			printSyncReport(report)
		}
		if err != nil {
			return err
		}

		if len(report.Outcomes) == 0 {
			fmt.Println("Nothing to sync.")
		}
		return nil
	},
}

func printSyncReport(report *syncer.Report) {
	for _, outcome := range report.Outcomes {
		label := outcome.TicketNumber
		if label == "" {
			label = "no ticket"
		}
		if outcome.Succeeded {
			fmt.Printf("Entry %d (%s): ok\n", outcome.EntryID, label)
			continue
		}
		fmt.Printf("Entry %d (%s): failed: %s\n", outcome.EntryID, label, outcome.ErrorMessage)
	}

	fmt.Printf(
		"Sync completed. Entries: %d, Succeeded: %d, Failed: %d, Marked synced: %d\n",
		len(report.Outcomes),
		report.SucceededCount(),
		report.FailedCount(),
		report.MarkedSynced,
	)
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncDBPath, "db", "", "Path to local SQLite database (default from config)")
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 0, "Concurrent worklog pushes (default from config)")
}
