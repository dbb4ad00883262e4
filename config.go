package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs. It is loaded once in main
// and handed to constructors so components never read ambient state.
type Config struct {
	ListenAddr  string
	DatabaseDSN string
	JWTSecret   []byte
	TokenTTL    time.Duration
	AutoMigrate bool
	SeedAdmin   bool
}

// LoadConfig reads the environment, auto-loading a local .env first
// (existing variables win).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8081"),
		DatabaseDSN: os.Getenv("DB_DSN"),
		TokenTTL:    30 * 24 * time.Hour,
		AutoMigrate: true,
		SeedAdmin:   true,
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	cfg.JWTSecret = []byte(secret)
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = d
	}
	if isFalse(os.Getenv("DB_AUTO_MIGRATE")) {
		cfg.AutoMigrate = false
	}
	if isFalse(os.Getenv("SEED_ADMIN")) {
		cfg.SeedAdmin = false
	}
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this service requires a Postgres DSN in DB_DSN")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isFalse(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return true
	}
	return false
}
