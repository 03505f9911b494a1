// syncgames mirrors the external game catalog into the local store. It is a
// one-shot batch job meant to run on a schedule, out of process from the API
// server. Any fetch failure or malformed payload aborts the run with a
// non-zero exit and the store untouched.
package main

import (
	"context"
	"log"
	"os"

	"gametopup-rest-api/internal/config"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/internal/service"
	"gametopup-rest-api/internal/upstream"
	"gametopup-rest-api/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	logg, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Environment: cfg.App.Environment,
		ServiceName: cfg.App.Name + "-syncgames",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	repo, err := repository.NewFromConfig(cfg.Store)
	if err != nil {
		logg.Error("failed to initialize catalog store", err)
		os.Exit(1)
	}
	defer repo.Close()

	catalogClient := upstream.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.RequestTimeout)
	policy := service.ParseReconcilePolicy(cfg.Catalog.ReconcilePolicy)
	syncService := service.NewSyncService(repo, catalogClient, policy, logg)

	applied, err := syncService.SyncGames(context.Background())
	if err != nil {
		logg.Error("sync failed", err)
		os.Exit(1)
	}

	logg.Info("sync complete", zap.Int("games", applied))
}
