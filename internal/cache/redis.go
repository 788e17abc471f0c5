// Package cache provides the optional Redis store behind the container
// client's read-through cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/five82/quayside/internal/config"
)

const (
	keyPrefix   = "quayside:payload:"
	poolSize    = 10
	dialTimeout = 2 * time.Second
)

// Redis stores raw API payloads keyed by request.
type Redis struct {
	client *goRedis.Client
}

// NewRedis connects to the configured server and verifies it with PING.
func NewRedis(ctx context.Context, cfg config.CacheConfig) (*Redis, error) {
	client := goRedis.NewClient(&goRedis.Options{
		Addr:        cfg.RedisAddr,
		DB:          cfg.RedisDB,
		PoolSize:    poolSize,
		DialTimeout: dialTimeout,
		MaxRetries:  1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return &Redis{client: client}, nil
}

// Get returns the cached payload. A miss is (nil, false, nil).
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, namespaced(key)).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// Set stores value for ttl. A zero ttl keeps the entry until evicted.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, namespaced(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func namespaced(key string) string {
	return keyPrefix + key
}
