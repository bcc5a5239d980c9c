package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"NEWSBOARD_PORT", "NEWSBOARD_DATABASE_URL", "NEWSBOARD_JWT_SECRET", "NEWSBOARD_TOKEN_TTL",
		"NEWSBOARD_DEV_MODE", "NEWSBOARD_REDIS_URL", "NEWSBOARD_CACHE_TTL", "NEWSBOARD_ALLOWED_ORIGINS",
		"NEWSBOARD_RATE_LIMIT_RPS", "NEWSBOARD_RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 8080 || cfg.TokenTTL != 24*time.Hour || cfg.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DevMode || cfg.RedisURL != "" || cfg.AllowedOrigins != nil {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NEWSBOARD_PORT", "9090")
	t.Setenv("NEWSBOARD_DATABASE_URL", "postgres://localhost/news")
	t.Setenv("NEWSBOARD_JWT_SECRET", "s3cret")
	t.Setenv("NEWSBOARD_TOKEN_TTL", "2h")
	t.Setenv("NEWSBOARD_DEV_MODE", "true")
	t.Setenv("NEWSBOARD_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("NEWSBOARD_CACHE_TTL", "30s")
	t.Setenv("NEWSBOARD_ALLOWED_ORIGINS", " https://a.example , , http://b.example ")
	t.Setenv("NEWSBOARD_RATE_LIMIT_RPS", "2.5")
	t.Setenv("NEWSBOARD_RATE_LIMIT_BURST", "4")

	cfg := Load()

	if cfg.Port != 9090 || cfg.DatabaseURL != "postgres://localhost/news" || cfg.JWTSecret != "s3cret" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.CacheTTL != 30*time.Second || !cfg.DevMode {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if want := []string{"https://a.example", "http://b.example"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Errorf("rate limit = %v/%d, want 2.5/4", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("NEWSBOARD_PORT", "eighty")
	t.Setenv("NEWSBOARD_TOKEN_TTL", "forever")
	t.Setenv("NEWSBOARD_DEV_MODE", "maybe")
	t.Setenv("NEWSBOARD_RATE_LIMIT_RPS", "x")

	cfg := Load()

	if cfg.Port != 8080 || cfg.TokenTTL != 24*time.Hour || cfg.DevMode || cfg.RateLimitRPS != 10 {
		t.Errorf("invalid values should fall back to defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	err := (&Config{}).Validate()
	if err == nil {
		t.Fatal("expected an error for an empty config")
	}
	for _, key := range []string{"NEWSBOARD_DATABASE_URL", "NEWSBOARD_JWT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should name %s", err, key)
		}
	}

	if err := (&Config{DatabaseURL: "postgres://x", JWTSecret: "y"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
