package cache

import (
	"context"
	"os"
	"testing"
	"time"

	interfaces "filmorate/internal/interfaces/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopCache()

	require.NoError(t, c.SetPopular(ctx, 10, []int64{1, 2}, time.Minute))

	_, err := c.GetPopular(ctx, 10)
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
	assert.NoError(t, c.InvalidatePopular(ctx))
	assert.NoError(t, c.Health(ctx))
	assert.NoError(t, c.Close())
}

func TestPopularKey(t *testing.T) {
	assert.Equal(t, "films:popular:10", popularKey(10))
}

// newTestRedis connects to FILMORATE_TEST_REDIS_ADDR on database 15.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("FILMORATE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FILMORATE_TEST_REDIS_ADDR not set")
	}

	c := NewRedisCache(addr, os.Getenv("FILMORATE_TEST_REDIS_PASSWORD"), 15)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Health(ctx); err != nil {
		t.Skipf("redis at %s unavailable: %v", addr, err)
	}

	require.NoError(t, c.Clear(context.Background(), popularKeyPrefix+"*"))
	t.Cleanup(func() {
		_ = c.Clear(context.Background(), popularKeyPrefix+"*")
		_ = c.Close()
	})
	return c
}

func TestRedisCache_PopularRoundTrip(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	_, err := c.GetPopular(ctx, 3)
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)

	require.NoError(t, c.SetPopular(ctx, 3, []int64{5, 1, 3}, time.Minute))
	require.NoError(t, c.SetPopular(ctx, 10, []int64{5}, time.Minute))

	ids, err := c.GetPopular(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 1, 3}, ids)

	require.NoError(t, c.InvalidatePopular(ctx))
	for _, count := range []int{3, 10} {
		_, err = c.GetPopular(ctx, count)
		assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.SetPopular(ctx, 1, []int64{1}, 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	_, err := c.GetPopular(ctx, 1)
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.GetClient().Set(ctx, popularKey(2), "not json", time.Minute).Err())

	_, err := c.GetPopular(ctx, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, interfaces.ErrCacheMiss)
}
