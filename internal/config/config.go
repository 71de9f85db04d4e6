package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the API server.
type Config struct {
	DatabaseURL            string
	ListenAddr             string
	JWTSecret              string
	TokenTTL               time.Duration
	SessionCleanupInterval time.Duration
	Debug                  bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:            strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:             strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		JWTSecret:              strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:               parseHours(strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS"))),
		SessionCleanupInterval: parseHours(strings.TrimSpace(os.Getenv("SESSION_CLEANUP_INTERVAL_HOURS"))),
	}
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil {
		cfg.Debug = dbg
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasknest.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.SessionCleanupInterval == 0 {
		cfg.SessionCleanupInterval = time.Hour
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
