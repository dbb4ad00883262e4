package main

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=fin dbname=fin")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "48h")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cfg.JWTSecret) != "s3cret" {
		t.Errorf("secret = %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate should be disabled")
	}
	if !cfg.SeedAdmin {
		t.Error("SeedAdmin should default on")
	}
}

func TestLoadConfigRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error without DB_DSN")
	}
}

func TestLoadConfigDefaultTokenTTL(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost")
	t.Setenv("TOKEN_TTL", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenTTL != 30*24*time.Hour {
		t.Errorf("default ttl = %v, want 720h", cfg.TokenTTL)
	}
}

func TestIsFalse(t *testing.T) {
	for _, v := range []string{"false", "FALSE", "0", "no"} {
		if !isFalse(v) {
			t.Errorf("isFalse(%q) = false", v)
		}
	}
	for _, v := range []string{"", "true", "1", "yes"} {
		if isFalse(v) {
			t.Errorf("isFalse(%q) = true", v)
		}
	}
}
