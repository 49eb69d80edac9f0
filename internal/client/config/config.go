package config

import (
	"time"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
)

// Config holds runtime settings for the film-folio CLI.
type Config struct {
	// StorageDriver is "sqlite", "postgres" or "redis".
	StorageDriver string
	// StorageDSN is a file path, a PostgreSQL DSN or a redis:// URL.
	StorageDSN string

	// CatalogSource is "mock", "tmdb" or "grpc".
	CatalogSource    string
	CatalogAddr      string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBAPIKey       string
	TMDBAccessToken  string
	RequestTimeout   time.Duration

	TokenSecret          string
	SessionTTL           string
	FavoritesConcurrency int
	DedupeFavorites      bool

	LogLevel  string
	LogFormat string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.StorageDSN = "cinemascape.db"
	c.CatalogSource = "mock"
	c.CatalogAddr = "127.0.0.1:50061"
	c.TMDBBaseURL = catalog.DefaultTMDBBaseURL
	c.TMDBImageBaseURL = catalog.DefaultTMDBImageBaseURL
	c.RequestTimeout = 10 * time.Second
	c.TokenSecret = common.DefaultTokenSecret
	c.SessionTTL = common.DefaultSessionTTL
	c.FavoritesConcurrency = 8
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
