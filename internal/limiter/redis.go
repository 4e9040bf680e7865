// internal/limiter/redis.go
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a fixed-window counter limiter backed by a shared Redis
// instance, suitable for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int64
}

func NewRedisStore(client *redis.Client, prefix string, window time.Duration, max int) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		window: window,
		max:    int64(max),
	}
}

func (rs *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("%s:%s", rs.prefix, key)

	count, err := rs.client.Incr(ctx, bucket).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate bucket: %w", err)
	}

	// First hit in the window owns setting the expiry.
	if count == 1 {
		if err := rs.client.Expire(ctx, bucket, rs.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate bucket expiry: %w", err)
		}
	}

	return count <= rs.max, nil
}
