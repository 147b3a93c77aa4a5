package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureConfigFileWithTemplateCreatesExample(t *testing.T) {
	tmpConfig := filepath.Join(t.TempDir(), "create-template.yaml")

	created, err := ensureConfigFileWithTemplate(tmpConfig)
	if err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}
	if !created {
		t.Fatal("expected a new file to be created")
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, "# logtracker configuration") {
		t.Fatalf("expected example header in config file, got:\n%s", text)
	}
	if !strings.Contains(text, "jira:") || !strings.Contains(text, "url: \"https://your-domain.atlassian.net\"") {
		t.Fatalf("expected jira section in config file, got:\n%s", text)
	}
}

func TestEnsureConfigFileWithTemplateDoesNotOverwriteExistingFile(t *testing.T) {
	tmpConfig := filepath.Join(t.TempDir(), "existing.yaml")
	original := "jira:\n  url: \"https://example.atlassian.net\"\n"
	if err := os.WriteFile(tmpConfig, []byte(original), 0o644); err != nil {
		t.Fatalf("failed writing initial config: %v", err)
	}

	created, err := ensureConfigFileWithTemplate(tmpConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected existing file to be left alone")
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("failed reading existing config: %v", err)
	}
	if string(content) != original {
		t.Fatalf("expected existing config to remain unchanged")
	}
}

func TestResolveConfigPathPrefersFlag(t *testing.T) {
	path, err := resolveConfigPath("/tmp/explicit.yaml", "/tmp/used.yaml")
	if err != nil {
		t.Fatalf("resolve config path: %v", err)
	}
	if path != "/tmp/explicit.yaml" {
		t.Fatalf("expected flag path to win, got %q", path)
	}

	path, err = resolveConfigPath("", "/tmp/used.yaml")
	if err != nil {
		t.Fatalf("resolve config path: %v", err)
	}
	if path != "/tmp/used.yaml" {
		t.Fatalf("expected loaded path as fallback, got %q", path)
	}
}

func TestDetectExportFormat(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{path: "entries.xlsx", want: "excel"},
		{path: "Entries.XLSX", want: "excel"},
		{path: "entries.xls", want: "excel"},
		{path: "entries.csv", want: "csv"},
		{path: "entries.txt", want: "csv"},
		{path: "entries", want: "csv"},
	}

	for _, tc := range cases {
		if got := detectExportFormat(tc.path); got != tc.want {
			t.Fatalf("detectExportFormat(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestMaskToken(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{token: "", want: ""},
		{token: "abcd", want: "****"},
		{token: "abcdefgh", want: "ab****gh"},
	}

	for _, tc := range cases {
		if got := maskToken(tc.token); got != tc.want {
			t.Fatalf("maskToken(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}
