package config

const (
	DefaultDatabaseImage = "postgres:16"
	DefaultDatabaseUser  = "postgres"
	DefaultDatabaseName  = "postgres"
	DefaultReadyAttempts = 30
	DefaultReadyInterval = "1s"
	DefaultDockerfile    = "Dockerfile"
	DefaultContextDir    = "."
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Image:         DefaultDatabaseImage,
			User:          DefaultDatabaseUser,
			Password:      DefaultDatabaseUser,
			Name:          DefaultDatabaseName,
			ReadyAttempts: DefaultReadyAttempts,
			ReadyInterval: DefaultReadyInterval,
		},
		Flatten: FlattenConfig{
			Dockerfile: DefaultDockerfile,
			ContextDir: DefaultContextDir,
		},
	}
}
