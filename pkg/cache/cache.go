// Package cache provides JSON value caching with a Redis implementation.
// Callers treat the cache as best-effort: a miss or a failed write never
// fails the operation that consulted it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parley-labs/parley/pkg/lifecycle"
)

// ErrMiss indicates the key is not present in the cache.
var ErrMiss = errors.New("cache miss")

// System manages cached JSON values and lifecycle coordination.
type System interface {
	// Start registers startup and shutdown hooks for the cache connection.
	Start(lc *lifecycle.Coordinator) error
	// SetJSON stores value under key for the configured TTL.
	SetJSON(ctx context.Context, key string, value any) error
	// GetJSON loads the value at key into dest. Returns ErrMiss when absent.
	GetJSON(ctx context.Context, key string, dest any) error
	// Delete removes the value at key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
}

// New creates a cache system from the given configuration. A disabled
// config yields a no-op system so callers never branch on enablement.
func New(cfg *Config, logger *slog.Logger) System {
	if !cfg.Enabled {
		return &nop{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisCache{
		client: client,
		ttl:    cfg.TTLDuration(),
		logger: logger.With("system", "cache"),
	}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache system")

	lc.OnStartup(func() {
		if err := c.client.Ping(lc.Context()).Err(); err != nil {
			c.logger.Warn("cache unreachable, continuing without it", "error", err)
			return
		}
		c.logger.Info("cache ready")
	})

	lc.OnShutdown(func() {
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache shutdown failed", "error", err)
		}
	})

	return nil
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal cache value %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete cache key %s: %w", key, err)
	}
	return nil
}

type nop struct{}

func (n *nop) Start(lc *lifecycle.Coordinator) error { return nil }

func (n *nop) SetJSON(ctx context.Context, key string, value any) error { return nil }

func (n *nop) GetJSON(ctx context.Context, key string, dest any) error { return ErrMiss }

func (n *nop) Delete(ctx context.Context, key string) error { return nil }
