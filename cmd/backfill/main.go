package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

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

	shopifyClient := shopify.NewClient(cfg.ShopDomain, cfg.ShopifyAPIVersion, cfg.ShopifyAccessToken, logger)
	tracker := klaviyo.NewClient(logger)
	transformer := sync.NewTransformer(cfg.KlaviyoToken, cfg.StoreURL)

	syncer := sync.New(shopifyClient, tracker, transformer, metrics.NewRegistry(), logger)
	syncer.Store = db
	syncer.TestEmailDomain = cfg.TestEmailDomain
	if cfg.KafkaBrokers != "" {
		publisher := stream.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic, logger)
		defer publisher.Close()
		syncer.Publisher = publisher
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting historical backfill...")
	if err := syncer.Historical(ctx); err != nil {
		logger.Fatal("Historical sync failed: %v", err)
	}
}
