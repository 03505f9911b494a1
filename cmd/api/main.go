package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gametopup-rest-api/internal/config"
	"gametopup-rest-api/internal/handler"
	"gametopup-rest-api/internal/pricing"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/internal/router"
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
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("starting API", zap.String("environment", cfg.App.Environment), zap.String("version", cfg.App.Version))

	// Catalog store
	repo, err := repository.NewFromConfig(cfg.Store)
	if err != nil {
		logg.Error("failed to initialize catalog store", err)
		os.Exit(1)
	}
	defer repo.Close()
	logg.Info("catalog store initialized", zap.String("type", cfg.Store.Type))

	// Upstream clients for the passthrough proxies. The read API never
	// calls the catalog API directly; only the sync jobs do.
	gateClient := upstream.NewGateClient(cfg.Gate.BaseURL, cfg.Gate.APIKey, cfg.Gate.RequestTimeout)
	regionClient := upstream.NewRegionClient(cfg.Region.BaseURL, cfg.Region.RequestTimeout)

	rates := pricing.Rates{
		SellingPercent: cfg.Pricing.SellingMarkupPercent,
		DummyPercent:   cfg.Pricing.DummyMarkupPercent,
	}

	// Services
	catalogService := service.NewCatalogService(repo, rates, cfg.Catalog.SentinelSlug, logg)
	gateService := service.NewGateService(gateClient, regionClient, cfg.Gate.DefaultGame, cfg.Region.DefaultGame, logg)

	// Handlers
	healthHandler := handler.New(repo, cfg.App.Version)
	gameHandler := handler.NewGameHandler(catalogService)
	gateHandler := handler.NewGateHandler(gateService)
	regionHandler := handler.NewRegionHandler(gateService)

	r := router.New(router.Config{
		Handler:       healthHandler,
		GameHandler:   gameHandler,
		GateHandler:   gateHandler,
		RegionHandler: regionHandler,
		Logger:        logg,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("server listening", zap.String("addr", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("server shutdown error", err)
	}

	logg.Info("server stopped")
}
