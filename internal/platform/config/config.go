package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Upstream price feeds
	GoldAPIURL      string
	GoldAPIKey      string
	ExchangeAPIURL  string
	ExchangeAPIKey  string
	UpstreamTimeout time.Duration

	// Rate engine cadences
	RealtimeRefreshInterval time.Duration // recompute the realtime cache
	SnapshotSaveInterval    time.Duration // persist a durable snapshot
	RealtimeCacheTTL        time.Duration // serve the realtime cache without recompute
	ExchangeCacheTTL        time.Duration // reuse fetched exchange rates

	// Rate limit for the public gold-rate endpoints, in limiter format
	// (e.g. "120-M" = 120 requests per minute per IP).
	PublicRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("GOLD_API_URL", "https://api.gold-api.com/price/XAU")
	viper.SetDefault("GOLD_API_KEY", "")
	viper.SetDefault("EXCHANGE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_API_KEY", "")
	viper.SetDefault("UPSTREAM_TIMEOUT", "5s")
	viper.SetDefault("REALTIME_REFRESH_INTERVAL", "3s")
	viper.SetDefault("SNAPSHOT_SAVE_INTERVAL", "6m")
	viper.SetDefault("REALTIME_CACHE_TTL", "4s")
	viper.SetDefault("EXCHANGE_CACHE_TTL", "2m")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		GoldAPIURL:      viper.GetString("GOLD_API_URL"),
		GoldAPIKey:      viper.GetString("GOLD_API_KEY"),
		ExchangeAPIURL:  viper.GetString("EXCHANGE_API_URL"),
		ExchangeAPIKey:  viper.GetString("EXCHANGE_API_KEY"),
		PublicRateLimit: viper.GetString("PUBLIC_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.GoldAPIKey == "" {
		log.Println("Warning: GOLD_API_KEY not set. Spot price fetches will likely fail.")
	}
	if cfg.ExchangeAPIKey == "" {
		log.Println("Warning: EXCHANGE_API_KEY not set. Exchange rate fetches will likely fail.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.UpstreamTimeout = parseDurationOr("UPSTREAM_TIMEOUT", 5*time.Second)
	cfg.RealtimeRefreshInterval = parseDurationOr("REALTIME_REFRESH_INTERVAL", 3*time.Second)
	cfg.SnapshotSaveInterval = parseDurationOr("SNAPSHOT_SAVE_INTERVAL", 6*time.Minute)
	cfg.RealtimeCacheTTL = parseDurationOr("REALTIME_CACHE_TTL", 4*time.Second)
	cfg.ExchangeCacheTTL = parseDurationOr("EXCHANGE_CACHE_TTL", 2*time.Minute)

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
