// Package ratelimit implements a fixed-window request limiter backed by an
// expiring Redis counter.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"postpilot/internal/middleware"
	"postpilot/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	// GenerateLimit and GenerateWindow bound calendar generation per user:
	// a single global bucket covers all rate-limited operations for a user.
	GenerateLimit  = 10
	GenerateWindow = 60 * time.Second
)

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the number of seconds until the window expires.
	// Only set when the check is rejected.
	RetryAfter int
}

// Limiter enforces `limit` requests per `window` per key. Store failures
// fail open: availability is prioritized over strict enforcement.
type Limiter struct {
	rdb      *redis.Client
	resource string
	limit    int
	window   time.Duration
}

// New returns a Limiter for the named resource.
func New(rdb *redis.Client, resource string, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, resource: resource, limit: limit, window: window}
}

// NewGenerateLimiter returns the limiter guarding calendar generation.
func NewGenerateLimiter(rdb *redis.Client) *Limiter {
	return New(rdb, "generate", GenerateLimit, GenerateWindow)
}

func (l *Limiter) key(id string) string {
	return fmt.Sprintf("rl:%s:%s", l.resource, id)
}

func (l *Limiter) failOpen(ctx context.Context, err error) Result {
	if err != nil {
		middleware.Logger.WarnContext(ctx, "rate limit check failed, allowing request",
			slog.String("resource", l.resource), slog.String("error", err.Error()))
	}
	return Result{Allowed: true, Remaining: l.limit}
}

// Check consumes one request from the caller's window and reports whether it
// is allowed. The first request in a window sets the counter to 1 with the
// window as expiry; later requests increment it. Once the counter reaches
// the limit the check is rejected with the seconds left until expiry.
func (l *Limiter) Check(ctx context.Context, id string) Result {
	if l.rdb == nil {
		return l.failOpen(ctx, nil)
	}

	key := l.key(id)

	current, err := l.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		if setErr := l.rdb.SetEx(ctx, key, 1, l.window).Err(); setErr != nil {
			return l.failOpen(ctx, setErr)
		}
		return Result{Allowed: true, Remaining: l.limit - 1}
	}
	if err != nil {
		return l.failOpen(ctx, err)
	}

	count, convErr := strconv.Atoi(current)
	if convErr != nil {
		return l.failOpen(ctx, convErr)
	}

	if count >= l.limit {
		retryAfter := int(l.window / time.Second)
		if ttl, ttlErr := l.rdb.TTL(ctx, key).Result(); ttlErr == nil && ttl > 0 {
			retryAfter = int(ttl / time.Second)
			if retryAfter <= 0 {
				retryAfter = 1
			}
		}
		observability.RateLimitRejections.WithLabelValues(l.resource).Inc()
		return Result{Allowed: false, Remaining: 0, RetryAfter: retryAfter}
	}

	if incrErr := l.rdb.Incr(ctx, key).Err(); incrErr != nil {
		return l.failOpen(ctx, incrErr)
	}
	return Result{Allowed: true, Remaining: l.limit - count - 1}
}
