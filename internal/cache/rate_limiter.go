package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixed window: the first hit of a window creates the counter and arms its expiry
const rateLimitScript = `
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return {current, ttl}
`

type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, scope, clientKey string) (RateLimitDecision, error)
}

type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) RateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisRateLimiter) key(scope, clientKey string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientKey)
}

func (l *RedisRateLimiter) Allow(ctx context.Context, scope, clientKey string) (RateLimitDecision, error) {
	res, err := l.client.Eval(ctx, rateLimitScript, []string{l.key(scope, clientKey)}, l.window.Milliseconds()).Result()
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("rate limit script: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		return RateLimitDecision{}, fmt.Errorf("unexpected rate limit result: %v", res)
	}
	count, _ := values[0].(int64)
	ttl, _ := values[1].(int64)

	decision := RateLimitDecision{
		Allowed:   count <= int64(l.limit),
		Remaining: l.limit - int(count),
	}
	if decision.Remaining < 0 {
		decision.Remaining = 0
	}
	if !decision.Allowed {
		decision.RetryAfter = time.Duration(ttl) * time.Millisecond
	}
	return decision, nil
}
