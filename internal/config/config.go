// Package config loads session configuration from a YAML file with
// sensible defaults for a standard game.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the session configuration.
type Config struct {
	Seed       int64  `yaml:"seed"`
	Difficulty string `yaml:"difficulty"`  // easy | standard | hard
	FiscalRule string `yaml:"fiscal_rule"` // golden-rule | deficit-ceiling | debt-falling | balanced-budget
	Months     int    `yaml:"months"`      // turn limit, 0 = run until terminal
	DBPath     string `yaml:"db_path"`
	APIPort    int    `yaml:"api_port"` // 0 disables the API
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Seed:       42,
		Difficulty: "standard",
		FiscalRule: "golden-rule",
		Months:     60,
		DBPath:     "data/chancellor.db",
		APIPort:    0,
	}
}

// Load reads a YAML config file, falling back to defaults for a missing
// path. The PORT environment variable overrides api_port.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			cfg.APIPort = p
		}
	}
	if cfg.Months < 0 {
		cfg.Months = 0
	}
	return cfg, nil
}
