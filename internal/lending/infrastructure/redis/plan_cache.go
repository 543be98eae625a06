package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// PlanCache implements port.PlanCache on Redis. Cache misses and Redis
// outages are both reported as misses; the caller recomputes either way.
type PlanCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPlanCache creates a Redis-backed plan cache.
func NewPlanCache(client *redis.Client, logger *slog.Logger) *PlanCache {
	return &PlanCache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached value for key, if present.
func (c *PlanCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("plan cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

// Set stores value under key with the given TTL.
func (c *PlanCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
