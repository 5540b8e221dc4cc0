package store

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/xelth-com/goodstrack/internal/config"
)

// RedisBackend stores values in Redis without expiry
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects and pings the configured Redis server
func NewRedisBackend(cfg config.LocalStoreConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBackend{client: client}, nil
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
