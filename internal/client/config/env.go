package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GASTROGLOBE_"

// parseEnv overlays Config with GASTROGLOBE_* environment variables.
// GASTROGLOBE_STORAGE_DSN maps to the storage_dsn key, and so on for every
// JsonConfig key. Panics on a malformed duration.
func parseEnv(cfg *Config) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		panic(err)
	}

	strs := map[string]*string{
		"storage_driver": &cfg.StorageDriver,
		"storage_dsn":    &cfg.StorageDSN,
		"namespace":      &cfg.Namespace,
		"recipes_source": &cfg.RecipesSource,
		"gallery_source": &cfg.GallerySource,
		"s3_endpoint":    &cfg.S3Endpoint,
		"s3_region":      &cfg.S3Region,
		"s3_access_key":  &cfg.S3AccessKey,
		"s3_secret_key":  &cfg.S3SecretKey,
		"session_secret": &cfg.SessionSecret,
		"log_format":     &cfg.LogFormat,
		"log_level":      &cfg.LogLevel,
	}
	for key, dst := range strs {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}

	durations := map[string]*time.Duration{
		"session_ttl":      &cfg.SessionTTL,
		"search_debounce":  &cfg.SearchDebounce,
		"login_latency":    &cfg.LoginLatency,
		"register_latency": &cfg.RegisterLatency,
		"profile_latency":  &cfg.ProfileLatency,
	}
	for key, dst := range durations {
		if !k.Exists(key) {
			continue
		}
		d, err := time.ParseDuration(k.String(key))
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
