package config

import (
	"testing"
	"time"

	"github.com/fantaleague/fantacalcio/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("DBURL should default to empty (memory mode), got %q", cfg.DBURL)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("cache defaults wrong: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.SettlePoolSize != 8 {
		t.Fatalf("SettlePoolSize = %d", cfg.SettlePoolSize)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when PYROSCOPE_ENABLED=true without server address")
	}
}

func TestLoad_AccountCircuitSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ACCOUNT_CIRCUIT_MAX_FAILURES", "3")
	t.Setenv("ACCOUNT_CIRCUIT_COOLDOWN", "45s")
	t.Setenv("ACCOUNT_CIRCUIT_PROBE_LIMIT", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AccountCircuitMaxFailures != 3 {
		t.Fatalf("AccountCircuitMaxFailures = %d", cfg.AccountCircuitMaxFailures)
	}
	if cfg.AccountCircuitCooldown != 45*time.Second {
		t.Fatalf("AccountCircuitCooldown = %s", cfg.AccountCircuitCooldown)
	}
	if cfg.AccountCircuitProbeLimit != 1 {
		t.Fatalf("AccountCircuitProbeLimit = %d", cfg.AccountCircuitProbeLimit)
	}

	t.Setenv("ACCOUNT_CIRCUIT_MAX_FAILURES", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for ACCOUNT_CIRCUIT_MAX_FAILURES=0")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("LogLevel = %s", cfg.LogLevel)
	}
}
