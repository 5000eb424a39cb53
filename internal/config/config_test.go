package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "farm-policy")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "farm")
	t.Setenv("DB_USER", "farm")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoadFrom_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFrom(newViper())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.App.HTTPPort)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr())
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Fatalf("unexpected redis ttl %s", cfg.Redis.TTL)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access expiry %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.PublicData.BaseURL != "https://api.odcloud.kr/api" {
		t.Fatalf("unexpected public data base url %q", cfg.PublicData.BaseURL)
	}
	if cfg.PublicData.ServiceKey != "" {
		t.Fatalf("expected empty service key")
	}
	if !cfg.Database.RunMigrations {
		t.Fatalf("expected migrations enabled by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_POOL_MAX_CONNS", "25")
	t.Setenv("REDIS_MATCH_TTL", "30s")
	t.Setenv("DATA_GO_KR_API_KEY", " key ")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := LoadFrom(newViper())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Database.PoolMaxConns != 25 {
		t.Fatalf("expected 25 max conns, got %d", cfg.Database.PoolMaxConns)
	}
	if cfg.Redis.MatchTTL != 30*time.Second {
		t.Fatalf("expected 30s match ttl, got %s", cfg.Redis.MatchTTL)
	}
	if cfg.PublicData.ServiceKey != "key" {
		t.Fatalf("expected trimmed key, got %q", cfg.PublicData.ServiceKey)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Log.Format)
	}
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_NAME", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := LoadFrom(newViper())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsMissingRequired(err) {
		t.Fatalf("expected missing required error, got %v", err)
	}
	if !strings.Contains(err.Error(), "APP_NAME") || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected both keys listed, got %v", err)
	}
}
