package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"logtracker/config"
	"logtracker/jira"
	"logtracker/storage"
)

// resolveConfigPath picks the config file to create: flag override first,
// then the file viper already loaded, then the home default.
func resolveConfigPath(flagPath, usedPath string) (string, error) {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath, nil
	}
	if strings.TrimSpace(usedPath) != "" {
		return usedPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".logtracker.yaml"), nil
}

// ensureConfigFileWithTemplate writes the example template when the file does
// not exist yet. It reports whether a new file was created.
func ensureConfigFileWithTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file %s: %w", path, err)
	}

	if _, err := config.ValidateYAMLContent([]byte(config.ExampleYAML())); err != nil {
		return false, fmt.Errorf("example config template is invalid: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write config file %s: %w", path, err)
	}
	return true, nil
}

// newJiraClient builds the HTTP client from config with the configured
// per-request deadline.
func newJiraClient(cfg *config.Config) (*jira.HTTPClient, error) {
	return jira.NewClient(jira.ClientConfig{
		BaseURL:    cfg.Jira.URL,
		Email:      cfg.Jira.Email,
		APIToken:   cfg.Jira.Token,
		UserAgent:  "logtracker",
		HTTPClient: &http.Client{Timeout: cfg.Jira.Timeout},
	})
}

// openStore opens the SQLite database, preferring the --db flag over config.
// Local-only commands pass a nil config; the configured database.path default
// still applies through viper.
func openStore(flagPath string, cfg *config.Config) (*storage.SQLiteStore, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" && cfg != nil {
		path = cfg.Database.Path
	}
	if path == "" {
		path = viper.GetString(config.KeyDatabasePath)
	}
	if path == "" {
		path = "./logtracker.db"
	}
	return storage.OpenSQLite(path)
}
