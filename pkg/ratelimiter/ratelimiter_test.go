package ratelimiter_test

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var cfg = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second}

func newBucket(t *testing.T) (*ratelimiter.Bucket, *clock, *ratelimiter.MemoryStore) {
	t.Helper()
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(c.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, c, store
}

func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, ratelimiter.Config{}.Enabled())
	assert.True(t, cfg.Enabled())

	_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), ratelimiter.Config{Capacity: 1})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("drains then refuses", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newBucket(t)

		for want := 2; want >= 0; want-- {
			res, err := b.Allow(ctx, "192.0.2.1")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, want, res.Remaining)
		}

		res, err := b.Allow(ctx, "192.0.2.1")
		require.NoError(t, err)
		assert.False(t, res.Allowed())

		// a refused request takes nothing
		res, err = b.Allow(ctx, "192.0.2.1")
		require.NoError(t, err)
		assert.Equal(t, -1, res.Remaining)
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()
		b, c, _ := newBucket(t)

		_, err := b.AllowN(ctx, "k", 3)
		require.NoError(t, err)

		c.Advance(2 * time.Second)
		res, err := b.AllowN(ctx, "k", 2)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Remaining)

		c.Advance(time.Hour)
		res, err = b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		b, _, store := newBucket(t)

		_, err := b.AllowN(ctx, "a", 3)
		require.NoError(t, err)
		res, err := b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 2, store.Len())

		require.NoError(t, b.Reset(ctx, "a"))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("invalid count", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newBucket(t)

		_, err := b.AllowN(ctx, "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})
}

func TestResultHeaders(t *testing.T) {
	t.Parallel()

	reset := time.Now().Add(2 * time.Second)

	h := http.Header{}
	(&ratelimiter.Result{Limit: 5, Remaining: 4, ResetAt: reset}).SetHeaders(h)
	assert.Equal(t, "5", h.Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", h.Get("X-RateLimit-Remaining"))
	assert.Empty(t, h.Get("Retry-After"))

	h = http.Header{}
	refused := &ratelimiter.Result{Limit: 5, Remaining: -1, ResetAt: reset}
	refused.SetHeaders(h)
	assert.Equal(t, "0", h.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, h.Get("Retry-After"))
	assert.Positive(t, refused.RetryAfter())
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	store := ratelimiter.NewRedisStore(client, "eventkit:test:ratelimit:")
	key := t.Name()
	t.Cleanup(func() { _ = store.Reset(context.Background(), key) })

	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	for want := 1; want >= 0; want-- {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}
	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
}
