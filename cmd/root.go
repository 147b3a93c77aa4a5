/*
Copyright © 2026 logtracker authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"logtracker/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logtracker",
	Short: "Log time entries locally and mirror them to Jira as worklogs.",
	Long: `
logtracker keeps a local SQLite journal of "what was done, for how long, on
which project/ticket" and mirrors unsynced entries to Jira as worklogs.

It also maintains a local registry of the Jira issue hierarchy: an import
fetches the flat issue list, rebuilds project/epic/feature paths from parent
links, and indexes the sub-tasks under each path for quick ticket lookup.
`,
	Example: `
  # Create configuration file
  logtracker config create

  # Log one hour of work on a ticket
  logtracker add --project PROJ --ticket PROJ-123 --duration 60 -m "reviewed rollout plan"

  # Push unsynced entries to Jira
  logtracker sync

  # Refresh the local issue-hierarchy registry
  logtracker import

  # Find an imported sub-task by title
  logtracker tickets search "rollout"
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.logtracker.yaml, then ./.logtracker.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

// requiresConfig guards the commands that talk to the remote tracker.
func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "sync", "import", "create":
		return cmd.Parent() == nil || cmd.Parent().Name() != "config"
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".logtracker" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".logtracker")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: logtracker config create")
	}
}
