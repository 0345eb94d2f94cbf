package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Shopify
	ShopDomain         string
	ShopifyAccessToken string
	ShopifyAPIVersion  string

	// Klaviyo
	KlaviyoToken string

	// Public storefront URL used for product links
	StoreURL string

	// Database
	DatabaseURL string

	// Kafka (optional event mirror; empty disables it)
	KafkaBrokers     string
	OrderEventsTopic string

	// API Configuration
	APIPort string
	APIHost string

	// Sync cadence
	SyncIntervalMinutes int
	SyncWindowMinutes   int

	// Orders whose customer email ends with this suffix are excluded
	// from the progress counter (still synced)
	TestEmailDomain string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		ShopDomain:          getEnv("SHOPIFY_SHOP_DOMAIN", ""),
		ShopifyAccessToken:  getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyAPIVersion:   getEnv("SHOPIFY_API_VERSION", "2023-10"),
		KlaviyoToken:        getEnv("KLAVIYO_ACCOUNT_TOKEN", ""),
		StoreURL:            getEnv("STORE_URL", ""),
		DatabaseURL:         getEnv("DATABASE_URL", "sqlite://ordersync.db"),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", ""),
		OrderEventsTopic:    getEnv("ORDER_EVENTS_TOPIC", "order-events"),
		APIPort:             getEnv("API_PORT", "8080"),
		APIHost:             getEnv("API_HOST", "0.0.0.0"),
		SyncIntervalMinutes: getEnvAsInt("SYNC_INTERVAL_MINUTES", 10),
		SyncWindowMinutes:   getEnvAsInt("SYNC_WINDOW_MINUTES", 30),
		TestEmailDomain:     getEnv("TEST_EMAIL_DOMAIN", "@example.com"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
