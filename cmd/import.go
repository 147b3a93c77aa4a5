package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logtracker/config"
	"logtracker/importer"
	"logtracker/jira"
)

var (
	importDBPath     string
	importQuery      string
	importMaxResults int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Refresh the local issue-hierarchy registry from Jira.",
	Long: `Fetch the issues matching the configured query, rebuild their
project/epic/feature paths from parent links, and replace the local path and
sub-task registries.

The replace is transactional: a failed import leaves the previous registries
exactly as they were. A query that matches nothing imports nothing and also
leaves the registries untouched. Sub-tasks whose parent did not resolve to a
path are dropped and only counted.`,
	Example: `
  # Refresh with the configured query
  logtracker import

  # One-off narrower refresh
  logtracker import --query "project = PROJ ORDER BY key"
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

		store, err := openStore(importDBPath, cfg)
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

		query := cfg.Import.Query
		if cmd.Flags().Changed("query") {
			query = importQuery
		}
		maxResults := cfg.Import.MaxResults
		if cmd.Flags().Changed("max-results") {
			maxResults = importMaxResults
		}

		service := importer.NewService(client, store, maxResults)
		result, err := service.ImportHierarchy(ctx, query)
		if err != nil {
			return err
		}

		if result.IssuesFetched == 0 {
			fmt.Println("Query matched no issues. Nothing imported; registries left untouched.")
			return nil
		}

		fmt.Printf(
			"Import completed in %s. Issues: %d, Paths: %d, Sub-tasks: %d, Dropped sub-tasks: %d\n",
			result.Elapsed.Round(10*time.Millisecond),
			result.IssuesFetched,
			result.PathCount,
			result.SubtaskCount,
			result.DroppedSubtasks,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database (default from config)")
	importCmd.Flags().StringVarP(&importQuery, "query", "q", "", "Search query override (default from config)")
	importCmd.Flags().IntVar(&importMaxResults, "max-results", 0, "Maximum issues to fetch (default from config)")
}
