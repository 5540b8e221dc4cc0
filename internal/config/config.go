package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv         string
	Port            string
	JWTSecret       string
	ReferencePrefix string
	Log             LogConfig
	Local           LocalStoreConfig
	Database        DatabaseConfig
	Sync            *SyncConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Format      string // json, console
	File        string // optional rotating file
	ServiceName string
}

// LocalStoreConfig selects and configures the on-device key-value backend
type LocalStoreConfig struct {
	Backend       string // file, redis, memory
	DataDir       string
	KeyPrefix     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// DatabaseConfig holds remote database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Embedded bool
	Migrate  bool
}

// placeholderValue marks connection settings copied from a template and never filled in
const placeholderValue = "placeholder"

// IsConfigured reports whether the remote backend has usable connection parameters.
func (c DatabaseConfig) IsConfigured() bool {
	if c.Embedded {
		return true
	}
	for _, v := range []string{c.Host, c.Database} {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, placeholderValue) {
			return false
		}
	}
	return true
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		NodeEnv:         getEnv("NODE_ENV", "development"),
		Port:            getEnv("PORT", "3210"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ReferencePrefix: getEnv("REF_PREFIX", "GTS"),
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			File:        os.Getenv("LOG_FILE"),
			ServiceName: getEnv("SERVICE_NAME", "goodstrack"),
		},
		Local: LocalStoreConfig{
			Backend:       getEnv("LOCAL_STORE_BACKEND", "file"),
			DataDir:       getEnv("LOCAL_STORE_DIR", "./gts_data"),
			KeyPrefix:     getEnv("LOCAL_STORE_KEY_PREFIX", "gts_"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getIntEnv("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("REMOTE_DB_HOST"),
			Port:     getEnv("REMOTE_DB_PORT", "5432"),
			Username: getEnv("REMOTE_DB_USER", "postgres"),
			Password: os.Getenv("REMOTE_DB_PASSWORD"),
			Database: getEnv("REMOTE_DB_NAME", "goodstrack"),
			SSLMode:  getEnv("REMOTE_DB_SSLMODE", "disable"),
			Embedded: getBoolEnv("REMOTE_DB_EMBEDDED", false),
			Migrate:  getBoolEnv("REMOTE_DB_MIGRATE", true),
		},
		Sync: LoadSyncConfig(),
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
