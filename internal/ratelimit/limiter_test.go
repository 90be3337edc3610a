package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb, "generate", limit, window), mr
}

func TestLimiter_FirstRequestOpensWindow(t *testing.T) {
	l, mr := setupLimiter(t, 10, time.Minute)

	res := l.Check(context.Background(), "1")
	assert.True(t, res.Allowed)
	assert.Equal(t, 9, res.Remaining)

	// Counter got the window expiry
	assert.Equal(t, time.Minute, mr.TTL("rl:generate:1"))
}

func TestLimiter_RemainingDecrements(t *testing.T) {
	l, _ := setupLimiter(t, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		res := l.Check(ctx, "1")
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10-i-1, res.Remaining, "request %d remaining", i+1)
	}
}

func TestLimiter_EleventhRequestRejected(t *testing.T) {
	l, _ := setupLimiter(t, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.True(t, l.Check(ctx, "1").Allowed)
	}

	res := l.Check(ctx, "1")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, 0)
	assert.LessOrEqual(t, res.RetryAfter, 60)
}

func TestLimiter_WindowExpiryResets(t *testing.T) {
	l, mr := setupLimiter(t, 2, time.Minute)
	ctx := context.Background()

	require.True(t, l.Check(ctx, "1").Allowed)
	require.True(t, l.Check(ctx, "1").Allowed)
	require.False(t, l.Check(ctx, "1").Allowed)

	mr.FastForward(time.Minute + time.Second)

	res := l.Check(ctx, "1")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := setupLimiter(t, 1, time.Minute)
	ctx := context.Background()

	require.True(t, l.Check(ctx, "1").Allowed)
	require.False(t, l.Check(ctx, "1").Allowed)

	// A different user still has a fresh window
	assert.True(t, l.Check(ctx, "2").Allowed)
}

func TestLimiter_FailOpen(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		l := New(nil, "generate", 10, time.Minute)
		res := l.Check(context.Background(), "1")
		assert.True(t, res.Allowed)
		assert.Equal(t, 10, res.Remaining)
	})

	t.Run("unreachable store", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		mr.Close()

		l := New(rdb, "generate", 10, time.Minute)
		res := l.Check(context.Background(), "1")
		assert.True(t, res.Allowed)
		assert.Equal(t, 10, res.Remaining)
	})
}
