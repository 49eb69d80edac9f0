// Package config handles configuration for catalogd, including defaults,
// a JSON overlay, environment variables and command-line flags.
package config

import (
	"time"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
)

// Config holds runtime settings for catalogd.
//
// Fields:
//   - ListenAddr: bind address for the gRPC endpoint.
//   - Source: catalog served to clients, "mock" or "tmdb".
//   - Latency: artificial delay added to every mock lookup.
//   - TMDB*: upstream settings when Source is "tmdb".
//   - LogLevel / LogFormat: slog handler settings.
type Config struct {
	ListenAddr       string
	Source           string
	Latency          time.Duration
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBAPIKey       string
	TMDBAccessToken  string
	RequestTimeout   time.Duration
	LogLevel         string
	LogFormat        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":50061"
	c.Source = "mock"
	c.TMDBBaseURL = catalog.DefaultTMDBBaseURL
	c.TMDBImageBaseURL = catalog.DefaultTMDBImageBaseURL
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
