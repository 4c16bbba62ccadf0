package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/gastroglobe/internal/buildinfo"
	"github.com/dmitrijs2005/gastroglobe/internal/client/catalog"
	"github.com/dmitrijs2005/gastroglobe/internal/client/cli"
	"github.com/dmitrijs2005/gastroglobe/internal/client/config"
	"github.com/dmitrijs2005/gastroglobe/internal/client/directory"
	"github.com/dmitrijs2005/gastroglobe/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gastroglobe/internal/client/services"
	"github.com/dmitrijs2005/gastroglobe/internal/client/session"
	"github.com/dmitrijs2005/gastroglobe/internal/client/storage"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := run(ctx, cfg); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	repo, closeRepo, err := kv.Open(ctx, cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error(ctx, "close storage", "error", err)
		}
	}()
	store := storage.New(repo, cfg.Namespace, logger)

	secret, err := sessionSecret(ctx, cfg, store)
	if err != nil {
		return err
	}

	events := session.NewBroadcaster(logger)
	defer events.Close()

	dir := directory.New(store, session.NewTokens(secret, cfg.SessionTTL), events, logger)
	dir.Load(ctx)
	logger.Debug(ctx, "directory loaded", "users", dir.Len())

	loader := newCatalogLoader(ctx, cfg, logger)

	recipes := loader.LoadRecipes(ctx, cfg.RecipesSource)
	gallery := loader.LoadGallery(ctx, cfg.GallerySource)
	if recipes.Fallback {
		fmt.Println("Catalogue indisponible, recettes de démonstration chargées")
	}

	latency := services.Latency{
		Login:    cfg.LoginLatency,
		Register: cfg.RegisterLatency,
		Profile:  cfg.ProfileLatency,
	}
	app := cli.NewApp(cli.Deps{
		Auth:       services.NewAuthService(dir, latency, logger),
		Profile:    services.NewProfileService(dir, latency, logger),
		Events:     events,
		Recipes:    recipes.Items,
		Gallery:    gallery.Items,
		Quiescence: cfg.SearchDebounce,
		Log:        logger,
	})

	app.Run(ctx)
	return nil
}

// sessionSecret returns the configured token secret, or one generated on
// first start and kept in the store.
func sessionSecret(ctx context.Context, cfg *config.Config, store *storage.Store) ([]byte, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), nil
	}

	var secret string
	if store.Get(ctx, storage.KeySessionSecret, &secret) && secret != "" {
		return []byte(secret), nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	// an unsaved secret only costs the session on the next start
	store.Set(ctx, storage.KeySessionSecret, secret)
	return []byte(secret), nil
}

var newS3Client = func(ctx context.Context, o catalog.S3Options) (catalog.ObjectGetter, error) {
	return catalog.NewS3Client(ctx, o)
}

// newCatalogLoader attaches an S3 client when a source needs one. A client
// that cannot be built leaves the S3 sources to the demo fallback.
func newCatalogLoader(ctx context.Context, cfg *config.Config, logger logging.Logger) *catalog.Loader {
	if !isS3(cfg.RecipesSource) && !isS3(cfg.GallerySource) {
		return catalog.NewLoader(logger)
	}

	client, err := newS3Client(ctx, catalog.S3Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		logger.Error(ctx, "create s3 client", "error", err)
		return catalog.NewLoader(logger)
	}
	return catalog.NewLoader(logger, catalog.WithObjectGetter(client))
}

func isS3(source string) bool {
	return strings.HasPrefix(source, "s3://")
}
