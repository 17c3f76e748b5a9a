// Package config loads the checker configuration used by the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config controls how diagnostics are rendered and filtered.
type Config struct {
	// MaxProblems caps the number of diagnostics printed per file.
	// Zero means no limit.
	MaxProblems int `yaml:"maxProblems" validate:"gte=0"`
	// MinSeverity hides diagnostics below the given severity.
	MinSeverity string `yaml:"minSeverity" validate:"oneof=error warning info hint"`
	// Color controls ANSI colors in the output.
	Color string `yaml:"color" validate:"oneof=auto always never"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{MinSeverity: "hint", Color: "auto"}
}

// Load reads and validates a YAML config file. Omitted fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
