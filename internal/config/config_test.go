package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
auth:
  jwt_access_ttl: 30m
bot:
  token: abc123
  moderators:
    12345: 1
    67890: 2
  read_retention: 168h
limits:
  reports_per_hour: 25
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL.String() != "30m0s" {
		t.Fatalf("unexpected jwt access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Bot.Token != "abc123" {
		t.Fatalf("unexpected bot token: %s", cfg.Bot.Token)
	}
	if cfg.Bot.Moderators[12345] != 1 || cfg.Bot.Moderators[67890] != 2 {
		t.Fatalf("unexpected moderator map: %v", cfg.Bot.Moderators)
	}
	if cfg.Bot.ReadRetention.String() != "168h0m0s" {
		t.Fatalf("unexpected read retention: %s", cfg.Bot.ReadRetention)
	}
	if cfg.Limits.ReportsPerHour != 25 {
		t.Fatalf("unexpected reports/hour: %d", cfg.Limits.ReportsPerHour)
	}

	if cfg.Limits.ReportsPerMinute != 3 {
		t.Fatalf("reports_per_minute default should stay 3")
	}
	if cfg.HTTP.ReadTimeout.String() != "5s" {
		t.Fatalf("http read timeout default should stay 5s")
	}
	if cfg.Auth.JWTSecret != "change-me" {
		t.Fatalf("unexpected jwt secret default: %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Limits.ReportsPerHour != 10 || cfg.Limits.ReportsPerMinute != 3 {
		t.Fatalf("unexpected report limit defaults: %d/%d", cfg.Limits.ReportsPerHour, cfg.Limits.ReportsPerMinute)
	}
	if cfg.Bot.CleanupInterval.String() != "6h0m0s" {
		t.Fatalf("unexpected default cleanup interval: %s", cfg.Bot.CleanupInterval)
	}
	if cfg.Bot.ReadRetention.String() != "720h0m0s" {
		t.Fatalf("unexpected default read retention: %s", cfg.Bot.ReadRetention)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("REPORTS_PER_MINUTE", "7")
	t.Setenv("BOT_MODERATORS", "100:3, 200:4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Limits.ReportsPerMinute != 7 {
		t.Fatalf("unexpected reports/minute: %d", cfg.Limits.ReportsPerMinute)
	}
	if cfg.Bot.Moderators[100] != 3 || cfg.Bot.Moderators[200] != 4 {
		t.Fatalf("unexpected moderator map: %v", cfg.Bot.Moderators)
	}
}

func TestLoadRejectsMalformedModeratorList(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("BOT_MODERATORS", "not-a-pair")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed BOT_MODERATORS")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"REFRESH_TTL",
		"BOT_TOKEN",
		"BOT_MODERATORS",
		"BOT_CLEANUP_INTERVAL",
		"BOT_READ_RETENTION",
		"REPORTS_PER_HOUR",
		"REPORTS_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}
