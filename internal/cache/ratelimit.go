package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter.
type RateLimiter interface {
	// Allow increments the key's window counter and reports whether the
	// request is within the limit.
	Allow(ctx context.Context, key string, limit int) (bool, error)
}

type rateLimiter struct {
	client *redis.Client
	window time.Duration
}

func NewRateLimiter(client *redis.Client) RateLimiter {
	return &rateLimiter{client: client, window: time.Minute}
}

func (l *rateLimiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	windowKey := "ratelimit:" + key + ":" + time.Now().UTC().Format("200601021504")

	count, err := l.client.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in this window sets the expiry.
		if err := l.client.Expire(ctx, windowKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
