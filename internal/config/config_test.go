package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tracker.Prefix != "FSDS" {
		t.Errorf("Expected prefix FSDS, got %q", cfg.Tracker.Prefix)
	}
	if cfg.Review.DeadlineDays != 3 {
		t.Errorf("Expected 3 deadline days, got %d", cfg.Review.DeadlineDays)
	}
	if cfg.Templates.Review != "email-template.md" {
		t.Errorf("Unexpected review template: %q", cfg.Templates.Review)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("Expected output dir '.', got %q", cfg.Output.Dir)
	}
}

func TestLoad(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		t.Setenv("REVIEWMAIL_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Tracker.Prefix != "FSDS" {
			t.Errorf("Defaults not applied: %+v", cfg.Tracker)
		}
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `tracker:
  prefix: OPS
review:
  deadline_days: 5
  signature: Sam
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("REVIEWMAIL_CONFIG", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Tracker.Prefix != "OPS" {
			t.Errorf("Expected prefix OPS, got %q", cfg.Tracker.Prefix)
		}
		if cfg.Review.DeadlineDays != 5 || cfg.Review.Signature != "Sam" {
			t.Errorf("Review overrides not applied: %+v", cfg.Review)
		}
		// Untouched sections keep defaults.
		if cfg.Templates.Review != "email-template.md" {
			t.Errorf("Defaults clobbered: %q", cfg.Templates.Review)
		}
	})

	t.Run("EnvExpansion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `jira:
  base_url: ${REVIEWMAIL_TEST_URL}
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("REVIEWMAIL_CONFIG", path)
		t.Setenv("REVIEWMAIL_TEST_URL", "https://jira.internal.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Jira.BaseURL != "https://jira.internal.example" {
			t.Errorf("Env var not expanded: %q", cfg.Jira.BaseURL)
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("tracker: [not: a map"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("REVIEWMAIL_CONFIG", path)

		if _, err := Load(); err == nil {
			t.Fatal("Expected error for invalid yaml")
		}
	})
}
