package config

import "os"

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "STEVEDORE_DB_IMAGE",
		apply: func(c *Config, v string) {
			c.Database.Image = v
		},
	},
	{
		envVar: "STEVEDORE_DB_USER",
		apply: func(c *Config, v string) {
			c.Database.User = v
		},
	},
	{
		envVar: "STEVEDORE_DB_PASSWORD",
		apply: func(c *Config, v string) {
			c.Database.Password = v
		},
	},
	{
		envVar: "STEVEDORE_PLATFORM",
		apply: func(c *Config, v string) {
			c.Flatten.Platform = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
