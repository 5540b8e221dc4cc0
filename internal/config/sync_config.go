package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultAutoSyncInterval is the background push period when none is configured
const DefaultAutoSyncInterval = 30

// SyncConfig holds synchronization configuration
type SyncConfig struct {
	AutoSyncEnabled  bool `json:"auto_sync_enabled"`
	AutoSyncInterval int  `json:"auto_sync_interval"` // seconds
	PullOnStartup    bool `json:"pull_on_startup"`
	PushOnStartup    bool `json:"push_on_startup"`
	RemoteTimeout    int  `json:"remote_timeout"` // seconds per remote call, 0 = none
}

// Interval returns the auto-sync period, falling back to the default for non-positive values.
func (c *SyncConfig) Interval() time.Duration {
	if c == nil || c.AutoSyncInterval <= 0 {
		return DefaultAutoSyncInterval * time.Second
	}
	return time.Duration(c.AutoSyncInterval) * time.Second
}

// LoadSyncConfig loads sync configuration from environment or file
func LoadSyncConfig() *SyncConfig {
	// Try to load from file first
	if configPath := os.Getenv("SYNC_CONFIG_PATH"); configPath != "" {
		if cfg, err := loadSyncConfigFromFile(configPath); err == nil {
			return cfg
		}
	}

	return getDefaultSyncConfig()
}

// loadSyncConfigFromFile loads sync config from JSON file
func loadSyncConfigFromFile(path string) (*SyncConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := getDefaultSyncConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getDefaultSyncConfig returns default sync configuration
func getDefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		AutoSyncEnabled:  getBoolEnv("SYNC_AUTO_ENABLED", true),
		AutoSyncInterval: getIntEnv("SYNC_AUTO_INTERVAL", DefaultAutoSyncInterval),
		PullOnStartup:    getBoolEnv("SYNC_PULL_ON_STARTUP", false),
		PushOnStartup:    getBoolEnv("SYNC_PUSH_ON_STARTUP", false),
		RemoteTimeout:    getIntEnv("SYNC_REMOTE_TIMEOUT", 15),
	}
}

// Helper functions for environment variables

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
