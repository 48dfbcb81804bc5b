package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"dvdshop/internal/logging"
)

const defaultRedisKeyPrefix = "dvd:"

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// Redis is a Cache backed by a Redis server. Lookups that fail are logged and
// reported as misses.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedis builds a Redis cache. No connection is made until first use.
func NewRedis(opts RedisOptions, logger *slog.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return newRedisWithClient(client, opts, logger)
}

func newRedisWithClient(client *redis.Client, opts RedisOptions, logger *slog.Logger) *Redis {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultRedisKeyPrefix
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	return &Redis{
		client: client,
		logger: logging.NewComponentLogger(logger, "cache").With(logging.String(logging.FieldCacheBackend, "redis")),
		prefix: opts.KeyPrefix,
		ttl:    opts.TTL,
	}
}

// Name implements Cache.
func (r *Redis) Name() string { return "redis" }

// Get implements Cache.
func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.misses.Add(1)
		return false, nil
	}
	if err != nil {
		r.misses.Add(1)
		r.warn(ctx, "cache get failed", "cache_get_failed", key, err)
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.misses.Add(1)
		r.warn(ctx, "cached value unreadable", "cache_decode_failed", key, err)
		return false, nil
	}
	r.hits.Add(1)
	return true, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.SetEx(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		r.warn(ctx, "cache set failed", "cache_set_failed", key, err)
	}
	return nil
}

// Delete implements Cache.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.warn(ctx, "cache delete failed", "cache_delete_failed", key, err)
	}
	return nil
}

// Clear implements Cache. It flushes the whole selected database.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flush redis db: %w", err)
	}
	r.logger.Info("redis cache cleared")
	return nil
}

// Stats implements Cache. When DBSIZE fails the key count is reported as zero.
func (r *Redis) Stats(ctx context.Context) (Stats, error) {
	hits, misses := r.hits.Load(), r.misses.Load()
	stats := Stats{Hits: hits, Misses: misses, HitRate: hitRate(hits, misses)}
	keys, err := r.client.DBSize(ctx).Result()
	if err != nil {
		r.warn(ctx, "cache key count unavailable", "cache_stats_failed", "", err)
		return stats, nil
	}
	stats.Keys = keys
	return stats, nil
}

// Ping implements Cache.
func (r *Redis) Ping(ctx context.Context) bool {
	result, err := r.client.Ping(ctx).Result()
	return err == nil && result == "PONG"
}

// ResetStats implements Cache.
func (r *Redis) ResetStats() {
	r.hits.Store(0)
	r.misses.Store(0)
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) warn(ctx context.Context, msg, eventType, key string, err error) {
	logging.WarnWithContext(logging.WithContext(ctx, r.logger), msg, eventType,
		logging.String("cache_key", key),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check redis connectivity"),
		logging.String(logging.FieldImpact, "calculation served without cache"),
	)
}
