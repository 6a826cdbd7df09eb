// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fantaleague/fantacalcio/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service. An empty DBURL runs
// the API against in-memory repositories with the seeded player pool.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	DBURL string

	CacheEnabled bool
	CacheTTL     time.Duration

	SettlePoolSize int

	AccountBaseURL            string
	AccountIntrospectPath     string
	AccountTimeout            time.Duration
	AccountCacheTTL           time.Duration
	AccountCircuitEnabled     bool
	AccountCircuitMaxFailures int
	AccountCircuitCooldown    time.Duration
	AccountCircuitProbeLimit  int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "fantacalcio-api"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:              getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                 strings.TrimSpace(getEnv("DB_URL", "")),
		AccountBaseURL:        getEnv("ACCOUNT_BASE_URL", "http://localhost:8081"),
		AccountIntrospectPath: getEnv("ACCOUNT_INTROSPECT_PATH", "/v1/auth/introspect"),
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	cfg.SettlePoolSize, err = getEnvAsInt("SETTLE_POOL_SIZE", 8)
	if err != nil {
		return Config{}, err
	}
	if cfg.SettlePoolSize < 1 {
		return Config{}, fmt.Errorf("SETTLE_POOL_SIZE must be >= 1")
	}

	cfg.AccountTimeout, err = getEnvAsDuration("ACCOUNT_TIMEOUT", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.AccountCacheTTL, err = getEnvAsDuration("ACCOUNT_CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.AccountCircuitEnabled, err = getEnvAsBool("ACCOUNT_CIRCUIT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.AccountCircuitMaxFailures, err = getEnvAsInt("ACCOUNT_CIRCUIT_MAX_FAILURES", 5)
	if err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitMaxFailures < 1 {
		return Config{}, fmt.Errorf("ACCOUNT_CIRCUIT_MAX_FAILURES must be >= 1")
	}
	cfg.AccountCircuitCooldown, err = getEnvAsDuration("ACCOUNT_CIRCUIT_COOLDOWN", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitCooldown <= 0 {
		return Config{}, fmt.Errorf("ACCOUNT_CIRCUIT_COOLDOWN must be > 0")
	}
	cfg.AccountCircuitProbeLimit, err = getEnvAsInt("ACCOUNT_CIRCUIT_PROBE_LIMIT", 2)
	if err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitProbeLimit < 1 {
		return Config{}, fmt.Errorf("ACCOUNT_CIRCUIT_PROBE_LIMIT must be >= 1")
	}

	cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}
