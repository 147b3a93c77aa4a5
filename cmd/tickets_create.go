package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"logtracker/config"
)

var (
	ticketsCreateParent      string
	ticketsCreateSummary     string
	ticketsCreateDescription string
)

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sub-task in Jira under a path-bearing parent.",
	Long: `Create a new sub-task under the given parent issue.

Pick the parent from "logtracker tickets paths"; a following import will pull
the new sub-task into the local registry.`,
	Example: `
  # Create a sub-task under PROJ-42
  logtracker tickets create --parent PROJ-42 --summary "Harden access checks" --description "See review notes"
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

		key, err := client.CreateSubtask(context.Background(), ticketsCreateParent, ticketsCreateSummary, ticketsCreateDescription)
		if err != nil {
			return err
		}

		fmt.Printf("Sub-task created: %s (parent %s)\n", key, ticketsCreateParent)
		fmt.Println("Run \"logtracker import\" to pull it into the local registry.")
		return nil
	},
}

func init() {
	ticketsCmd.AddCommand(ticketsCreateCmd)

	ticketsCreateCmd.Flags().StringVar(&ticketsCreateParent, "parent", "", "Parent issue key (e.g. PROJ-42)")
	ticketsCreateCmd.Flags().StringVar(&ticketsCreateSummary, "summary", "", "Sub-task summary")
	ticketsCreateCmd.Flags().StringVar(&ticketsCreateDescription, "description", "", "Sub-task description")

	_ = ticketsCreateCmd.MarkFlagRequired("parent")
	_ = ticketsCreateCmd.MarkFlagRequired("summary")
}
