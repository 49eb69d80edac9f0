package config

import (
	"encoding/json"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/flagx"
	"github.com/hitenchhabria09/film-folio-pro/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the value the Config already has.
type JsonConfig struct {
	StorageDriver        string         `json:"storage_driver"`
	StorageDSN           string         `json:"storage_dsn"`
	CatalogSource        string         `json:"catalog_source"`
	CatalogAddr          string         `json:"catalog_addr"`
	TMDBBaseURL          string         `json:"tmdb_base_url"`
	TMDBImageBaseURL     string         `json:"tmdb_image_base_url"`
	TMDBAPIKey           string         `json:"tmdb_api_key"`
	TMDBAccessToken      string         `json:"tmdb_access_token"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	TokenSecret          string         `json:"token_secret"`
	SessionTTL           string         `json:"session_ttl"`
	FavoritesConcurrency int            `json:"favorites_concurrency"`
	DedupeFavorites      *bool          `json:"dedupe_favorites"`
	LogLevel             string         `json:"log_level"`
	LogFormat            string         `json:"log_format"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file given
// with -c or -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.CatalogSource, jc.CatalogSource)
	setString(&cfg.CatalogAddr, jc.CatalogAddr)
	setString(&cfg.TMDBBaseURL, jc.TMDBBaseURL)
	setString(&cfg.TMDBImageBaseURL, jc.TMDBImageBaseURL)
	setString(&cfg.TMDBAPIKey, jc.TMDBAPIKey)
	setString(&cfg.TMDBAccessToken, jc.TMDBAccessToken)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	setString(&cfg.SessionTTL, jc.SessionTTL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.FavoritesConcurrency > 0 {
		cfg.FavoritesConcurrency = jc.FavoritesConcurrency
	}
	if jc.DedupeFavorites != nil {
		cfg.DedupeFavorites = *jc.DedupeFavorites
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
