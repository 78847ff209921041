package config

import (
	"fmt"
	"strings"
)

// validateConfig checks config invariants after load and overrides.
func validateConfig(cfg *Config) error {
	if cfg.Database.Image == "" {
		return fmt.Errorf("database.image must not be empty")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database.user must not be empty")
	}
	if cfg.Database.ReadyAttempts < 1 {
		return fmt.Errorf("database.ready_attempts must be at least 1, got %d", cfg.Database.ReadyAttempts)
	}
	interval, err := cfg.Database.ReadyIntervalDuration()
	if err != nil {
		return fmt.Errorf("database.ready_interval: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("database.ready_interval must be positive, got %s", cfg.Database.ReadyInterval)
	}
	for i, ext := range cfg.Extensions {
		if strings.TrimSpace(ext.Name) == "" {
			return fmt.Errorf("extensions[%d]: name must not be empty", i)
		}
	}
	if cfg.Flatten.Dockerfile == "" {
		return fmt.Errorf("flatten.dockerfile must not be empty")
	}
	return nil
}
