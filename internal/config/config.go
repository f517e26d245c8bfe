package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port      string
	JWTSecret string
	ReplayDir string
	DataDir   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:      envOrDefault("PORT", "8010"),
		JWTSecret: envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		ReplayDir: envOrDefault("REPLAY_DIR", "replays"),
		DataDir:   envOrDefault("DATA_DIR", "data"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
