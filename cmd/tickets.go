package cmd

import "github.com/spf13/cobra"

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Browse the imported issue registry and create sub-tasks.",
	Long: `Work with the locally imported issue hierarchy.

"tickets paths" lists the project/epic/feature paths, "tickets search" finds
sub-tasks under those paths, and "tickets create" opens a new sub-task in
Jira under a path-bearing parent.`,
	Example: `
  # List all imported paths
  logtracker tickets paths

  # Find a sub-task by fragment of its path, title, or key
  logtracker tickets search "rollout"

  # Create a sub-task under an imported parent
  logtracker tickets create --parent PROJ-42 --summary "Harden access checks"
`,
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
}
