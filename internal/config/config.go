package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store modes select the persistence tier backing the catalog.
const (
	StorePostgres = "postgres"
	StoreLocal    = "local"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// StoreMode selects between the Postgres system of record and the
	// quota-bounded local JSON store.
	StoreMode string

	DB       DatabaseConfig
	Redis    RedisConfig
	Local    LocalStoreConfig
	Upstream UpstreamConfig
	Worker   WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LocalStoreConfig contains settings for the file-backed fallback store.
type LocalStoreConfig struct {
	DataDir    string
	QuotaBytes int64
}

// UpstreamConfig contains settings for the upstream catalog API client.
type UpstreamConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration // storefront variant; admin/sync calls use the request context only
	MockFallback  bool
	WebhookSecret string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	SyncInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.StoreMode = getEnv("STORE_MODE", StorePostgres)

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Local fallback store
	cfg.Local = LocalStoreConfig{
		DataDir:    getEnv("LOCAL_DATA_DIR", "data"),
		QuotaBytes: int64(getEnvInt("LOCAL_QUOTA_BYTES", 5*1024*1024)),
	}

	// Upstream catalog API. Mock fallback defaults to on outside production
	// so a dead upstream degrades to demo data instead of errors.
	cfg.Upstream = UpstreamConfig{
		BaseURL:       getEnv("UPSTREAM_BASE_URL", ""),
		Token:         getEnv("UPSTREAM_TOKEN", ""),
		MockFallback:  getEnvBool("MOCK_FALLBACK", cfg.Env != "production"),
		WebhookSecret: getEnv("UPSTREAM_WEBHOOK_SECRET", ""),
	}

	var err error
	if cfg.Upstream.Timeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", "3s"); err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	if cfg.Worker.SyncInterval, err = parseDurationEnv("SYNC_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}

	if cfg.StoreMode != StorePostgres && cfg.StoreMode != StoreLocal {
		return nil, fmt.Errorf("invalid STORE_MODE %q: must be %q or %q", cfg.StoreMode, StorePostgres, StoreLocal)
	}

	// The DB parameters only matter when Postgres backs the catalog.
	if cfg.StoreMode == StorePostgres {
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	}

	// Admin auth runs only against the Postgres store; the local file store
	// is for single-operator development and skips it.
	if cfg.StoreMode == StorePostgres && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a boolean or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
