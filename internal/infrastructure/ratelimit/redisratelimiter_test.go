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

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "user:1", Limits{PerMinute: 5})
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user:1", Limits{PerMinute: 5})
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_PerHour(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user:1", Limits{PerMinute: 10, PerHour: 3})
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "user:1", Limits{PerMinute: 10, PerHour: 3})
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied by the hour window")
}

func TestRedisRateLimiter_Allow_DifferentKeys(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	limits := Limits{PerMinute: 2}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "ip:10.0.0.1", limits)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "ip:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "ip:10.0.0.2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are not affected")
}

func TestRedisRateLimiter_CountAndReset(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	count, err := limiter.Count(ctx, "user:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "user:1", Limits{PerMinute: 5})
		require.NoError(t, err)
	}

	count, err = limiter.Count(ctx, "user:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, limiter.Reset(ctx, "user:1"))
	count, err = limiter.Count(ctx, "user:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "user:1", Limits{PerMinute: 5})
	assert.Error(t, err)
}
