package config

import "time"

// Config holds runtime settings for the GastroGlobe client.
//
// Durations are time.Duration values; the JSON loader accepts them as
// strings like "300ms" or as integer nanoseconds.
type Config struct {
	// Storage backend: "sqlite", "postgres" or "badger".
	StorageDriver string
	StorageDSN    string
	// Namespace prefixes every persisted key as <Namespace>_<key>.
	Namespace string

	RecipesSource string
	GallerySource string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string

	// SessionSecret signs the persisted current-user token. When empty a
	// secret is generated once and kept in the store.
	SessionSecret string
	SessionTTL    time.Duration

	SearchDebounce  time.Duration
	LoginLatency    time.Duration
	RegisterLatency time.Duration
	ProfileLatency  time.Duration

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.StorageDSN = "gastroglobe.db"
	c.Namespace = "gastroglobe"
	c.RecipesSource = "data/recipes.json"
	c.GallerySource = "data/gallery.json"
	c.S3Region = "eu-west-1"
	c.SessionTTL = 720 * time.Hour
	c.SearchDebounce = 300 * time.Millisecond
	c.LoginLatency = time.Second
	c.RegisterLatency = 1500 * time.Millisecond
	c.ProfileLatency = time.Second
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), GASTROGLOBE_* environment variables and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
