package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RedisRateLimiter caps outbound provider calls with a fixed window counter
// in Redis, so the quota holds across all service instances.
type RedisRateLimiter struct {
	client redis.UniversalClient
	key    string
	limit  int64
	window time.Duration
}

func NewRedisRateLimiter(client redis.UniversalClient, key string, limit int, window time.Duration) *RedisRateLimiter {
	if key == "" {
		key = "provider:rate_limit"
	}
	return &RedisRateLimiter{
		client: client,
		key:    key,
		limit:  int64(limit),
		window: window,
	}
}

// Wait blocks until a slot is available in the current window or the context
// is done. With a nil client the limiter is a no-op.
func (r *RedisRateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.client == nil || r.limit <= 0 {
		return nil
	}

	for {
		raw, err := rateLimitScript.Run(ctx, r.client, []string{r.key}, r.window.Milliseconds()).Result()
		if err != nil {
			return fmt.Errorf("rate limiter script failed: %w", err)
		}

		values, ok := raw.([]interface{})
		if !ok || len(values) != 2 {
			return fmt.Errorf("unexpected rate limiter response shape: %T", raw)
		}
		count, ok := values[0].(int64)
		if !ok {
			return fmt.Errorf("unexpected rate limiter count type: %T", values[0])
		}
		if count <= r.limit {
			return nil
		}

		ttlMs, ok := values[1].(int64)
		if !ok || ttlMs <= 0 {
			ttlMs = r.window.Milliseconds()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(ttlMs) * time.Millisecond):
		}
	}
}
