package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"logtracker/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The API
token is masked.`,
	Example: `
  # Show active configuration
  logtracker config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("jira.url: %s\n", cfg.Jira.URL)
			fmt.Printf("jira.email: %s\n", cfg.Jira.Email)
			fmt.Printf("jira.token: %s\n", maskToken(cfg.Jira.Token))
			fmt.Printf("jira.timeout: %s\n", cfg.Jira.Timeout)
			fmt.Printf("sync.concurrency: %d\n", cfg.Sync.Concurrency)
			fmt.Printf("import.query: %s\n", cfg.Import.Query)
			fmt.Printf("import.max_results: %d\n", cfg.Import.MaxResults)
			fmt.Printf("database.path: %s\n", cfg.Database.Path)
		}
	},
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:2] + strings.Repeat("*", len(token)-4) + token[len(token)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
