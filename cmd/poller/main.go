package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ordersync/internal/api"
	"ordersync/internal/config"
	"ordersync/internal/database"
	"ordersync/internal/logger"
	"ordersync/internal/metrics"
	"ordersync/internal/services/klaviyo"
	"ordersync/internal/services/shopify"
	"ordersync/internal/stream"
	"ordersync/internal/sync"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m := metrics.NewRegistry()

	shopifyClient := shopify.NewClient(cfg.ShopDomain, cfg.ShopifyAPIVersion, cfg.ShopifyAccessToken, logger)
	tracker := klaviyo.NewClient(logger)
	transformer := sync.NewTransformer(cfg.KlaviyoToken, cfg.StoreURL)

	syncer := sync.New(shopifyClient, tracker, transformer, m, logger)
	syncer.Store = db
	syncer.TestEmailDomain = cfg.TestEmailDomain
	syncer.Interval = time.Duration(cfg.SyncIntervalMinutes) * time.Minute
	syncer.Window = time.Duration(cfg.SyncWindowMinutes) * time.Minute
	if cfg.KafkaBrokers != "" {
		publisher := stream.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic, logger)
		defer publisher.Close()
		syncer.Publisher = publisher
	}

	server := api.New(cfg, logger, db, m)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting periodic sync...")
	err = syncer.Periodic(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if stopErr := server.Stop(shutdownCtx); stopErr != nil {
		logger.Error("Server shutdown error: %v", stopErr)
	}

	if err != nil && err != context.Canceled {
		logger.Fatal("Periodic sync failed: %v", err)
	}
}
