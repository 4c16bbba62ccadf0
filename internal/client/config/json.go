package config

import (
	"os"

	"github.com/dmitrijs2005/gastroglobe/internal/flagx"
	"github.com/dmitrijs2005/gastroglobe/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Intervals use timex.Duration so they can be written as "300ms" or as
// integer nanoseconds.
type JsonConfig struct {
	StorageDriver   string         `json:"storage_driver"`
	StorageDSN      string         `json:"storage_dsn"`
	Namespace       string         `json:"namespace"`
	RecipesSource   string         `json:"recipes_source"`
	GallerySource   string         `json:"gallery_source"`
	S3Endpoint      string         `json:"s3_endpoint"`
	S3Region        string         `json:"s3_region"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	SessionSecret   string         `json:"session_secret"`
	SessionTTL      timex.Duration `json:"session_ttl"`
	SearchDebounce  timex.Duration `json:"search_debounce"`
	LoginLatency    timex.Duration `json:"login_latency"`
	RegisterLatency timex.Duration `json:"register_latency"`
	ProfileLatency  timex.Duration `json:"profile_latency"`
	LogFormat       string         `json:"log_format"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := fromConfig(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func fromConfig(cfg *Config) JsonConfig {
	return JsonConfig{
		StorageDriver:   cfg.StorageDriver,
		StorageDSN:      cfg.StorageDSN,
		Namespace:       cfg.Namespace,
		RecipesSource:   cfg.RecipesSource,
		GallerySource:   cfg.GallerySource,
		S3Endpoint:      cfg.S3Endpoint,
		S3Region:        cfg.S3Region,
		S3AccessKey:     cfg.S3AccessKey,
		S3SecretKey:     cfg.S3SecretKey,
		SessionSecret:   cfg.SessionSecret,
		SessionTTL:      timex.Duration{Duration: cfg.SessionTTL},
		SearchDebounce:  timex.Duration{Duration: cfg.SearchDebounce},
		LoginLatency:    timex.Duration{Duration: cfg.LoginLatency},
		RegisterLatency: timex.Duration{Duration: cfg.RegisterLatency},
		ProfileLatency:  timex.Duration{Duration: cfg.ProfileLatency},
		LogFormat:       cfg.LogFormat,
		LogLevel:        cfg.LogLevel,
	}
}

func (jc JsonConfig) apply(cfg *Config) {
	cfg.StorageDriver = jc.StorageDriver
	cfg.StorageDSN = jc.StorageDSN
	cfg.Namespace = jc.Namespace
	cfg.RecipesSource = jc.RecipesSource
	cfg.GallerySource = jc.GallerySource
	cfg.S3Endpoint = jc.S3Endpoint
	cfg.S3Region = jc.S3Region
	cfg.S3AccessKey = jc.S3AccessKey
	cfg.S3SecretKey = jc.S3SecretKey
	cfg.SessionSecret = jc.SessionSecret
	cfg.SessionTTL = jc.SessionTTL.Duration
	cfg.SearchDebounce = jc.SearchDebounce.Duration
	cfg.LoginLatency = jc.LoginLatency.Duration
	cfg.RegisterLatency = jc.RegisterLatency.Duration
	cfg.ProfileLatency = jc.ProfileLatency.Duration
	cfg.LogFormat = jc.LogFormat
	cfg.LogLevel = jc.LogLevel
}
