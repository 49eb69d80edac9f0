package config

import (
	"encoding/json"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/flagx"
	"github.com/hitenchhabria09/film-folio-pro/internal/timex"
)

// JsonConfig is the DTO read from the -c/-config file. Durations accept
// strings such as "150ms" or integer nanoseconds.
type JsonConfig struct {
	ListenAddr       string         `json:"listen_addr"`
	Source           string         `json:"source"`
	Latency          timex.Duration `json:"latency"`
	TMDBBaseURL      string         `json:"tmdb_base_url"`
	TMDBImageBaseURL string         `json:"tmdb_image_base_url"`
	TMDBAPIKey       string         `json:"tmdb_api_key"`
	TMDBAccessToken  string         `json:"tmdb_access_token"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
}

// parseJson overlays config with the non-empty fields of the JSON file.
// It panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.ListenAddr:       c.ListenAddr,
		&config.Source:           c.Source,
		&config.TMDBBaseURL:      c.TMDBBaseURL,
		&config.TMDBImageBaseURL: c.TMDBImageBaseURL,
		&config.TMDBAPIKey:       c.TMDBAPIKey,
		&config.TMDBAccessToken:  c.TMDBAccessToken,
		&config.LogLevel:         c.LogLevel,
		&config.LogFormat:        c.LogFormat,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.Latency.Duration > 0 {
		config.Latency = c.Latency.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
