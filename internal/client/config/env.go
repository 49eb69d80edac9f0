package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envFile is loaded, if present, before the environment is read. Variables
// already set in the process environment win over the file.
var envFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvTMDBAPIKey      = "TMDB_API_KEY"
	EnvTMDBAccessToken = "TMDB_ACCESS_TOKEN"
	EnvS3Bucket        = "CINEMASCAPE_S3_BUCKET"
	EnvS3Region        = "CINEMASCAPE_S3_REGION"
	EnvS3Endpoint      = "CINEMASCAPE_S3_ENDPOINT"
	EnvS3AccessKey     = "CINEMASCAPE_S3_ACCESS_KEY"
	EnvS3SecretKey     = "CINEMASCAPE_S3_SECRET_KEY"
	EnvTokenSecret     = "CINEMASCAPE_TOKEN_SECRET"
)

// parseEnv overlays secrets and service endpoints from the environment.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(envFile) // ok if missing

	for name, dst := range map[string]*string{
		EnvTMDBAPIKey:      &cfg.TMDBAPIKey,
		EnvTMDBAccessToken: &cfg.TMDBAccessToken,
		EnvS3Bucket:        &cfg.S3Bucket,
		EnvS3Region:        &cfg.S3Region,
		EnvS3Endpoint:      &cfg.S3BaseEndpoint,
		EnvS3AccessKey:     &cfg.S3AccessKey,
		EnvS3SecretKey:     &cfg.S3SecretKey,
		EnvTokenSecret:     &cfg.TokenSecret,
	} {
		setString(dst, os.Getenv(name))
	}
}
