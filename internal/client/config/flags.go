package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gastroglobe/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   storage driver: sqlite, postgres or badger
//	-d string   storage DSN (file path, postgres URL or badger directory)
//	-r string   recipes catalog source (path, http(s):// or s3:// URL)
//	-g string   gallery catalog source
//	-l string   log format: text or json
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other stages
// (-c/-config) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-r", "-g", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, postgres, badger)")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.RecipesSource, "r", cfg.RecipesSource, "recipes catalog source")
	fs.StringVar(&cfg.GallerySource, "g", cfg.GallerySource, "gallery catalog source")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text, json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
