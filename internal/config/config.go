// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first when present; variables
// already set in the process environment win over it.
//
// Environment variables:
//
//	PORT:           HTTP listen port (default: 8080)
//	DB_PATH:        SQLite database file (default: ./data/tripsplit.db)
//	LOG_LEVEL:      debug, info, warn, error (default: info)
//	LOG_FORMAT:     text or json (default: text)
//	REDIS_URL:      redis:// URL for rate limiting; empty disables it
//	RATE_LIMIT:     requests allowed per peer per window (default: 120)
//	RATE_WINDOW:    rate limit window as a Go duration (default: 1m)
//	DISPLAY_PLACES: decimals shown in statements (default: 0)
//	CORS_ORIGIN:    Access-Control-Allow-Origin value (default: *)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port          int
	DBPath        string
	LogLevel      string
	LogFormat     string
	RedisURL      string
	RateLimit     int
	RateWindow    time.Duration
	DisplayPlaces int32
	CORSOrigin    string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "./data/tripsplit.db"),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
		RedisURL:   os.Getenv("REDIS_URL"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}

	if cfg.RateLimit, err = getInt("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive: %d", cfg.RateLimit)
	}

	if cfg.RateWindow, err = time.ParseDuration(getEnv("RATE_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("invalid RATE_WINDOW: %w", err)
	}
	if cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("RATE_WINDOW must be positive: %s", cfg.RateWindow)
	}

	places, err := getInt("DISPLAY_PLACES", 0)
	if err != nil {
		return nil, err
	}
	if places < 0 || places > 8 {
		return nil, fmt.Errorf("DISPLAY_PLACES out of range: %d", places)
	}
	cfg.DisplayPlaces = int32(places)

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", cfg.LogFormat)
	}

	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
