package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/auth"
	"github.com/idilsaglam/bucketlist/internal/retry"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendDemo   = "demo"
)

type Config struct {
	Environment string

	// Storage
	Backend      string
	DataDir      string
	SQLitePath   string
	WriteThrough bool
	DemoDelay    time.Duration

	// Loading
	LoadRetries uint
	LoadTimeout time.Duration

	// Images
	UploadDir     string
	UploadRetries uint
	MaxImageBytes int64

	// Auth
	CredentialsDir string
	JWTSecret      string

	// Observability
	LogLevel string
	LogFile  string

	// UI
	Theme string
}

func Load() (*Config, error) {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	base, err := auth.DefaultDir()
	if err != nil {
		base = ".bucketlist"
	}
	dataDir := getEnv("BUCKETLIST_DATA_DIR", filepath.Join(base, "data"))

	cfg := &Config{
		Environment: getEnv("BUCKETLIST_ENV", "development"),

		Backend:      getEnv("BUCKETLIST_BACKEND", BackendJSON),
		DataDir:      dataDir,
		SQLitePath:   getEnv("BUCKETLIST_SQLITE_PATH", filepath.Join(dataDir, "bucketlist.db")),
		WriteThrough: getEnvAsBool("BUCKETLIST_WRITE_THROUGH", true),
		DemoDelay:    getEnvAsDuration("BUCKETLIST_DEMO_DELAY", time.Second),

		LoadRetries: getEnvAsUint("BUCKETLIST_LOAD_RETRIES", 1),
		LoadTimeout: getEnvAsDuration("BUCKETLIST_LOAD_TIMEOUT", 0),

		UploadDir:     getEnv("BUCKETLIST_UPLOAD_DIR", filepath.Join(base, "uploads")),
		UploadRetries: getEnvAsUint("BUCKETLIST_UPLOAD_RETRIES", 1),
		MaxImageBytes: getEnvAsInt64("BUCKETLIST_MAX_IMAGE_BYTES", attach.DefaultMaxBytes),

		CredentialsDir: getEnv("BUCKETLIST_CREDENTIALS_DIR", base),
		JWTSecret:      getEnv("BUCKETLIST_JWT_SECRET", ""),

		LogLevel: getEnv("BUCKETLIST_LOG_LEVEL", "info"),
		LogFile:  getEnv("BUCKETLIST_LOG_FILE", ""),

		Theme: getEnv("BUCKETLIST_THEME", "classic"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendDemo:
	default:
		return fmt.Errorf("invalid backend: %s (valid: json, sqlite, demo)", c.Backend)
	}

	if c.Backend == BackendJSON && c.DataDir == "" {
		return fmt.Errorf("BUCKETLIST_DATA_DIR is required for the json backend")
	}
	if c.Backend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("BUCKETLIST_SQLITE_PATH is required for the sqlite backend")
	}

	if c.LoadTimeout < 0 {
		return fmt.Errorf("invalid load timeout: %s", c.LoadTimeout)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("invalid max image size: %d", c.MaxImageBytes)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// LoadPolicy is the retry policy for the initial load.
func (c *Config) LoadPolicy() retry.Policy {
	return retry.Policy{MaxTries: c.LoadRetries, Timeout: c.LoadTimeout}
}

// UploadPolicy is the retry policy for image uploads.
func (c *Config) UploadPolicy() retry.Policy {
	return retry.Policy{MaxTries: c.UploadRetries}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsUint(key string, defaultValue uint) uint {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return defaultValue
	}
	return uint(value)
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
