package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Server
	ServerPort string

	// Storage
	DatabaseURL string
	RedisAddr   string

	// Auth
	JWTSecret      string
	TokenTTLHours  int
	BcryptCost     int

	// Metadata providers
	TMDBAPIKey string

	// Background refresh
	RefreshCron        string // cron spec for the stale-metadata sweep
	SearchCacheTTLMins int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables and an optional .env
// file. Missing required credentials are a fatal startup error; nothing here
// is recoverable at runtime.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// .env is optional
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("TOKEN_TTL_HOURS", 72)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("REFRESH_CRON", "0 4 * * *")
	viper.SetDefault("SEARCH_CACHE_TTL_MINS", 60)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		ServerPort:         viper.GetString("SERVER_PORT"),
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		TokenTTLHours:      viper.GetInt("TOKEN_TTL_HOURS"),
		BcryptCost:         viper.GetInt("BCRYPT_COST"),
		TMDBAPIKey:         viper.GetString("TMDB_API_KEY"),
		RefreshCron:        viper.GetString("REFRESH_CRON"),
		SearchCacheTTLMins: viper.GetInt("SEARCH_CACHE_TTL_MINS"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return cfg, nil
}
