package config

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyJiraURL          = "jira.url"
	KeyJiraEmail        = "jira.email"
	KeyJiraToken        = "jira.token"
	KeyJiraTimeout      = "jira.timeout"
	KeySyncConcurrency  = "sync.concurrency"
	KeyImportQuery      = "import.query"
	KeyImportMaxResults = "import.max_results"
	KeyDatabasePath     = "database.path"
)

type Config struct {
	Jira     JiraConfig     `mapstructure:"jira" validate:"required"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Import   ImportConfig   `mapstructure:"import"`
	Database DatabaseConfig `mapstructure:"database"`
}

type JiraConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Email   string        `mapstructure:"email" validate:"required,email"`
	Token   string        `mapstructure:"token" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SyncConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=8"`
}

type ImportConfig struct {
	Query      string `mapstructure:"query" validate:"required"`
	MaxResults int    `mapstructure:"max_results" validate:"gte=1"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# logtracker configuration
jira:
  url: "https://your-domain.atlassian.net"
  email: "you@example.com"
  token: "your-api-token"
  timeout: 30s

sync:
  concurrency: 4

import:
  query: "project is not EMPTY ORDER BY key"
  max_results: 1000

database:
  path: "./logtracker.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if cfg.Jira.Timeout < 0 {
		return nil, fmt.Errorf("validation failed: jira.timeout must not be negative")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyJiraTimeout, 30*time.Second)
	v.SetDefault(KeySyncConcurrency, 4)
	v.SetDefault(KeyImportQuery, "project is not EMPTY ORDER BY key")
	v.SetDefault(KeyImportMaxResults, 1000)
	v.SetDefault(KeyDatabasePath, "./logtracker.db")
}
