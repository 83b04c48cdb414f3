package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gcsim/internal/collector"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // hcl file or directory
	Demo         bool   // run the built-in sample scenario instead

	Strategy  string
	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" && !cfg.Demo {
		return nil, errors.New("ScenarioPath is a required configuration field unless the demo scenario is requested")
	}
	if cfg.ScenarioPath != "" && cfg.Demo {
		return nil, errors.New("a scenario path and the demo scenario are mutually exclusive")
	}
	if _, err := collector.ParseStrategy(cfg.Strategy); err != nil {
		return nil, fmt.Errorf("invalid strategy: %w", err)
	}
	return &cfg, nil
}
