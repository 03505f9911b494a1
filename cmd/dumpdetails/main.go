// dumpdetails fetches the per-game detail payload for each configured slug
// and upserts it into the local store. One-shot batch job; each slug is
// independent, so a failed slug is logged and skipped rather than aborting
// the run.
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
		ServiceName: cfg.App.Name + "-dumpdetails",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	slugs := cfg.Catalog.DumpSlugs()
	if len(slugs) == 0 {
		logg.Warn("CATALOG_DUMP_SLUGS is empty, nothing to dump")
		return
	}

	repo, err := repository.NewFromConfig(cfg.Store)
	if err != nil {
		logg.Error("failed to initialize catalog store", err)
		os.Exit(1)
	}
	defer repo.Close()

	catalogClient := upstream.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.RequestTimeout)
	policy := service.ParseReconcilePolicy(cfg.Catalog.ReconcilePolicy)
	syncService := service.NewSyncService(repo, catalogClient, policy, logg)

	dumped, skipped := syncService.DumpGameDetails(context.Background(), slugs)
	logg.Info("dump complete", zap.Int("dumped", dumped), zap.Int("skipped", skipped))
}
