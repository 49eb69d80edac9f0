package config

import (
	"os"

	"github.com/joho/godotenv"
)

var envFile = ".env"

// parseEnv reads TMDB credentials from the environment (and ./.env).
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		config.TMDBAPIKey = v
	}
	if v := os.Getenv("TMDB_ACCESS_TOKEN"); v != "" {
		config.TMDBAccessToken = v
	}
}
