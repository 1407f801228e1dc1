package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisCache(rdb, ttl), mr
}

func TestRedisCache_StoreSent(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, 24*time.Hour)
	sentAt := time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)

	require.NoError(t, cache.StoreSent(context.Background(), 42, "SM42", sentAt))

	key := "message:SM42"
	require.True(t, mr.Exists(key))
	assert.Equal(t, 24*time.Hour, mr.TTL(key))

	raw, err := mr.Get(key)
	require.NoError(t, err)

	var got sentValue
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, int64(42), got.NotificationID)
	assert.True(t, got.SentAt.Equal(sentAt))
}

func TestRedisCache_StoreSent_ContextCanceled(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, cache.StoreSent(ctx, 1, "x", time.Now()))
}

func TestRedisCache_MarkInbound(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	first, err := cache.MarkInbound(ctx, "SM-in-1")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := cache.MarkInbound(ctx, "SM-in-1")
	require.NoError(t, err)
	assert.False(t, again, "redelivery is reported as a duplicate")

	other, err := cache.MarkInbound(ctx, "SM-in-2")
	require.NoError(t, err)
	assert.True(t, other)

	mr.FastForward(2 * time.Minute)

	expired, err := cache.MarkInbound(ctx, "SM-in-1")
	require.NoError(t, err)
	assert.True(t, expired, "ids are forgotten after the ttl")
}

func TestRedisCache_Unavailable(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, err := cache.MarkInbound(context.Background(), "SM-in-3")
	assert.Error(t, err)
}

func TestRedisCache_LookupSent(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()
	sentAt := time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)

	require.NoError(t, cache.StoreSent(ctx, 7, "SM7", sentAt))

	got, found, err := cache.LookupSent(ctx, "SM7")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(7), got.NotificationID)
	assert.True(t, got.SentAt.Equal(sentAt))

	_, found, err = cache.LookupSent(ctx, "SM-missing")
	require.NoError(t, err)
	assert.False(t, found)

	mr.FastForward(2 * time.Hour)

	_, found, err = cache.LookupSent(ctx, "SM7")
	require.NoError(t, err)
	assert.False(t, found, "entries expire with the ttl")
}

func TestRedisCache_LookupSent_CorruptValue(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, time.Hour)
	require.NoError(t, mr.Set("message:SMbad", "not-json"))

	_, _, err := cache.LookupSent(context.Background(), "SMbad")
	assert.Error(t, err)
}

func TestRedisCache_ReleaseInbound(t *testing.T) {
	t.Parallel()

	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	first, err := cache.MarkInbound(ctx, "SM-in-9")
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, cache.ReleaseInbound(ctx, "SM-in-9"))
	assert.False(t, mr.Exists("inbound:SM-in-9"))

	again, err := cache.MarkInbound(ctx, "SM-in-9")
	require.NoError(t, err)
	assert.True(t, again, "a released id is claimable again")

	require.NoError(t, cache.ReleaseInbound(ctx, "SM-never-seen"))
}
