package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateYAMLContent_AcceptsExampleTemplate(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example template to validate: %v", err)
	}
	if cfg.Jira.URL == "" || cfg.Jira.Email == "" || cfg.Jira.Token == "" {
		t.Fatalf("expected populated jira section, got %+v", cfg.Jira)
	}
	if cfg.Sync.Concurrency != 4 {
		t.Fatalf("unexpected concurrency: %d", cfg.Sync.Concurrency)
	}
}

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	content := []byte(`jira:
  url: "https://example.atlassian.net"
  email: "dev@example.com"
  token: "secret"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected minimal config to validate: %v", err)
	}
	if cfg.Jira.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.Jira.Timeout)
	}
	if cfg.Sync.Concurrency != 4 {
		t.Fatalf("unexpected default concurrency: %d", cfg.Sync.Concurrency)
	}
	if cfg.Import.MaxResults != 1000 {
		t.Fatalf("unexpected default max results: %d", cfg.Import.MaxResults)
	}
	if cfg.Database.Path != "./logtracker.db" {
		t.Fatalf("unexpected default database path: %q", cfg.Database.Path)
	}
	if cfg.Import.Query == "" {
		t.Fatal("expected default import query")
	}
}

func TestValidateYAMLContent_RejectsBadEmail(t *testing.T) {
	t.Parallel()

	content := []byte(`jira:
  url: "https://example.atlassian.net"
  email: "not-an-email"
  token: "secret"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatal("expected validation error for bad email")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsMissingToken(t *testing.T) {
	t.Parallel()

	content := []byte(`jira:
  url: "https://example.atlassian.net"
  email: "dev@example.com"
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatal("expected validation error for missing token")
	}
}

func TestValidateYAMLContent_RejectsOutOfRangeConcurrency(t *testing.T) {
	t.Parallel()

	content := []byte(`jira:
  url: "https://example.atlassian.net"
  email: "dev@example.com"
  token: "secret"
sync:
  concurrency: 50
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatal("expected validation error for concurrency above the cap")
	}
}

func TestValidateYAMLContent_RejectsNegativeTimeout(t *testing.T) {
	t.Parallel()

	content := []byte(`jira:
  url: "https://example.atlassian.net"
  email: "dev@example.com"
  token: "secret"
  timeout: -5s
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("unexpected error: %v", err)
	}
}
