package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage logtracker configuration file values.",
	Long: `Create and display the logtracker configuration file.

The configuration stores the tracker connection and engine tuning values:
- jira.url / jira.email / jira.token / jira.timeout
- sync.concurrency
- import.query / import.max_results
- database.path`,
	Example: `
  # Create default config in $HOME/.logtracker.yaml
  logtracker config create

  # Show active config and source file
  logtracker config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
