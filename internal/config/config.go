package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level stevedore configuration.
type Config struct {
	// Database configures the container used for extension verification.
	Database DatabaseConfig `yaml:"database"`

	// Extensions is the ordered list of extension test cases.
	// Empty means use the built-in default list.
	Extensions []ExtensionCase `yaml:"extensions,omitempty"`

	// Flatten configures the image flattening pipeline.
	Flatten FlattenConfig `yaml:"flatten"`
}

// DatabaseConfig holds settings for the verification database container.
type DatabaseConfig struct {
	// Image is the database image to launch.
	Image string `yaml:"image"`

	// User is the database superuser name.
	User string `yaml:"user"`

	// Password is the database superuser password.
	Password string `yaml:"password"`

	// Name is the database to connect to.
	Name string `yaml:"name"`

	// ReadyAttempts bounds the readiness poll.
	ReadyAttempts int `yaml:"ready_attempts"`

	// ReadyInterval is the fixed sleep between readiness probes,
	// as a duration string like "1s".
	ReadyInterval string `yaml:"ready_interval"`
}

// ReadyIntervalDuration returns the parsed readiness probe interval.
func (c *DatabaseConfig) ReadyIntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.ReadyInterval)
}

// FlattenConfig holds settings for the flatten pipeline.
type FlattenConfig struct {
	// Dockerfile is the path to the source image definition.
	Dockerfile string `yaml:"dockerfile"`

	// ContextDir is the build context directory.
	ContextDir string `yaml:"context_dir"`

	// Platform is an optional target platform passed through to
	// build and import steps (e.g. "linux/amd64").
	Platform string `yaml:"platform,omitempty"`
}

// Load reads configuration from <dir>/stevedore.yaml, applies
// environment overrides, and validates the result. A missing config
// file is not an error; defaults are used.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(dir, "stevedore.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions()
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
