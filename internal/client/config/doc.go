// Package config loads runtime configuration for the GastroGlobe client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. GASTROGLOBE_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage driver (sqlite, postgres, badger)
//	-d string   storage DSN
//	-r string   recipes catalog source
//	-g string   gallery catalog source
//	-l string   log format (text, json)
//
// # JSON schema
//
// Intervals are timex.Duration values, so they can be strings like "300ms"
// or integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "gastroglobe.db",
//	  "recipes_source": "s3://catalog/recipes.json",
//	  "search_debounce": "300ms",
//	  "session_ttl": "720h"
//	}
//
// Every JSON key can also be given as an environment variable by upper-casing
// it and adding the prefix: GASTROGLOBE_STORAGE_DSN, GASTROGLOBE_SESSION_TTL.
package config
