package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finlens-dev/finlens/internal/analytics"
)

// FileName is the config file written at the data directory root.
const FileName = "finlens.yaml"

// Config represents the top-level finlens.yaml configuration.
type Config struct {
	Analytics AnalyticsConfig `yaml:"analytics"`
	Git       GitConfig       `yaml:"git"`
}

// AnalyticsConfig holds the tunables of the suggestion engine.
type AnalyticsConfig struct {
	// GuardrailPct bounds how far a cap suggestion may move from a prior
	// confirmed cap, as a fraction of that cap.
	GuardrailPct float64 `yaml:"guardrail_pct"`
	// DefaultNet is the assumed monthly net income (VND) for months with no
	// income transactions.
	DefaultNet int64 `yaml:"default_net"`
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a finlens.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Analytics: AnalyticsConfig{
			GuardrailPct: analytics.DefaultGuardrailPct,
			DefaultNet:   analytics.DefaultNet,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "FinLens",
			AuthorEmail: "finlens@localhost",
		},
	}
}
