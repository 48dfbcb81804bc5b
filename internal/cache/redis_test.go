package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dvdshop/internal/logging"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(RedisOptions{Addr: mr.Addr(), TTL: time.Minute}, logging.NewNop())
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisSetUsesPrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "calculate:v1:abc", payload{Total: 36}, 0))

	assert.True(t, mr.Exists("dvd:calculate:v1:abc"))
	assert.Equal(t, time.Minute, mr.TTL("dvd:calculate:v1:abc"))

	raw, err := mr.Get("dvd:calculate:v1:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":36}`, raw)
}

func TestRedisGetHitAndMiss(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "k", payload{Total: 15}, 0))

	var got payload
	found, err := r.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 15.0, got.Total)

	found, err = r.Get(ctx, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)

	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Keys: 1, HitRate: 50}, stats)
}

func TestRedisEntryExpires(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "k", payload{}, 2*time.Second))
	mr.FastForward(3 * time.Second)

	var got payload
	found, err := r.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisUnreadableValueIsMiss(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, mr.Set("dvd:k", "not json"))

	var got payload
	found, err := r.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "a", payload{}, 0))
	require.NoError(t, r.Set(ctx, "b", payload{}, 0))
	require.NoError(t, r.Delete(ctx, "a"))
	assert.False(t, mr.Exists("dvd:a"))

	require.NoError(t, r.Clear(ctx))
	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Keys)
}

func TestRedisPing(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	assert.True(t, r.Ping(ctx))
	assert.Equal(t, "redis", r.Name())

	mr.Close()
	assert.False(t, r.Ping(ctx))
}

func TestRedisDegradesWhenServerFails(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	mr.SetError("LOADING redis is loading the dataset in memory")

	require.NoError(t, r.Set(ctx, "k", payload{Total: 1}, 0))

	var got payload
	found, err := r.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, r.Delete(ctx, "k"))

	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Keys)
	assert.Equal(t, int64(1), stats.Misses)

	r.ResetStats()
	stats, _ = r.Stats(ctx)
	assert.Equal(t, int64(0), stats.Misses)
}
