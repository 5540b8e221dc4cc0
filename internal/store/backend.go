package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/goodstrack/internal/config"
)

// ErrKeyNotFound is returned by backends for keys that were never written
var ErrKeyNotFound = errors.New("key not found")

// Backend is the device key-value store. Values are opaque JSON documents.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend kinds accepted by OpenBackend
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// OpenBackend builds the backend selected by configuration
func OpenBackend(cfg config.LocalStoreConfig) (Backend, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileBackend(cfg.DataDir)
	case BackendRedis:
		return NewRedisBackend(cfg)
	case BackendMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown local store backend %q", cfg.Backend)
}
