package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"logtracker/config"
)

var ticketsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the live details of one Jira issue.",
	Long: `Look up one issue directly in Jira, bypassing the local registry.

Useful to check a ticket key before logging time against it.`,
	Example: `
  # Inspect a ticket
  logtracker tickets show PROJ-123
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		client, err := newJiraClient(cfg)
		if err != nil {
			return err
		}

		issue, err := client.GetIssueDetails(context.Background(), args[0])
		if err != nil {
			return err
		}
		if issue == nil {
			fmt.Printf("Issue %s does not exist.\n", args[0])
			return nil
		}

		fmt.Printf("Key:    %s\n", issue.Key)
		fmt.Printf("Title:  %s\n", issue.Title)
		fmt.Printf("Type:   %s\n", issue.Type)
		fmt.Printf("Status: %s\n", issue.Status)
		if issue.ParentKey != "" {
			fmt.Printf("Parent: %s\n", issue.ParentKey)
		}
		return nil
	},
}

func init() {
	ticketsCmd.AddCommand(ticketsShowCmd)
}
