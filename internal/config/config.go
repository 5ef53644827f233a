// Package config handles reviewmail configuration loading and validation.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for reviewmail.
type Config struct {
	Tracker   TrackerConfig  `yaml:"tracker"`
	Jira      JiraConfig     `yaml:"jira"`
	Review    ReviewConfig   `yaml:"review"`
	Templates TemplateConfig `yaml:"templates"`
	Output    OutputConfig   `yaml:"output"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// TrackerConfig identifies the issue tracker whose pages we parse.
type TrackerConfig struct {
	// Prefix is the ticket key prefix, e.g. "FSDS" in [FSDS-189].
	Prefix string `yaml:"prefix"`
	// SiteSuffix is the decoration Jira appends to page titles,
	// e.g. "OCC Jira" in "[FSDS-189] Fix crash - OCC Jira".
	SiteSuffix string `yaml:"site_suffix"`
}

// JiraConfig defines the live Jira API connection.
type JiraConfig struct {
	BaseURL   string `yaml:"base_url"`
	TokenPath string `yaml:"token_path"`
}

// ReviewConfig defines how the review request is composed.
type ReviewConfig struct {
	// DeadlineDays is the number of business days reviewers get.
	DeadlineDays int `yaml:"deadline_days"`
	// Signature is the sender's first name, substituted into templates.
	Signature string `yaml:"signature"`
}

// TemplateConfig points at the email template files.
type TemplateConfig struct {
	Review   string `yaml:"review"`
	Approved string `yaml:"approved"`
}

// OutputConfig defines where generated files land.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	PageTitle string `yaml:"page_title"`
}

// LoggingConfig defines log verbosity and error reporting.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Tracker: TrackerConfig{
			Prefix:     "FSDS",
			SiteSuffix: "OCC Jira",
		},
		Jira: JiraConfig{
			BaseURL:   "https://jira.theocc.com",
			TokenPath: filepath.Join(homeDir, ".jira-token"),
		},
		Review: ReviewConfig{
			DeadlineDays: 3,
		},
		Templates: TemplateConfig{
			Review:   "email-template.md",
			Approved: "approved-template.md",
		},
		Output: OutputConfig{
			Dir:       ".",
			PageTitle: "FSDS Review Request",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the default path or returns defaults.
func Load() (*Config, error) {
	configPath := DefaultConfigPath()

	// A .env beside the config file can hold secrets referenced via
	// ${VAR} in the yaml; a missing .env is fine.
	godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.expandEnvVars()
	return cfg, nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if p := os.Getenv("REVIEWMAIL_CONFIG"); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config/reviewmail/config.yaml")
}

func (c *Config) expandEnvVars() {
	c.Jira.BaseURL = os.ExpandEnv(c.Jira.BaseURL)
	c.Jira.TokenPath = os.ExpandEnv(c.Jira.TokenPath)
	c.Logging.SentryDSN = os.ExpandEnv(c.Logging.SentryDSN)
}
