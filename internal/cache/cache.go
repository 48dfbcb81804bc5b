package cache

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"dvdshop/internal/config"
	"dvdshop/internal/logging"
	"dvdshop/internal/services"
)

// Cache is the port the API server uses to memoize calculations.
type Cache interface {
	// Get decodes the entry for key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value under key. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) bool
	ResetStats()
	Close() error
	// Name identifies the backend ("memory" or "redis").
	Name() string
}

// Stats reports cache effectiveness since start or the last ResetStats.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Keys    int64   `json:"keys"`
	HitRate float64 `json:"hitRate"`
}

// hitRate returns hits as a percentage of lookups, rounded to two decimals.
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(total)*100*100) / 100
}

// New builds the backend selected by cfg. It returns nil when caching is
// disabled. A Redis backend that cannot be reached at startup is still
// returned; its operations degrade to misses until Redis recovers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Cache, error) {
	if cfg == nil {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case config.CacheBackendNone, "":
		return nil, nil
	case config.CacheBackendMemory:
		return NewMemory(MemoryOptions{
			TTL:        cfg.CacheTTL(),
			MaxEntries: cfg.Cache.MaxEntries,
		}, logger), nil
	case config.CacheBackendRedis:
		r := NewRedis(RedisOptions{
			Addr:      cfg.Cache.Redis.Addr,
			Password:  cfg.Cache.Redis.Password,
			DB:        cfg.Cache.Redis.DB,
			KeyPrefix: cfg.Cache.Redis.KeyPrefix,
			TTL:       cfg.CacheTTL(),
		}, logger)
		if !r.Ping(ctx) {
			logging.WarnWithContext(r.logger, "redis unreachable at startup", "cache_redis_unreachable",
				logging.String("addr", cfg.Cache.Redis.Addr),
				logging.String(logging.FieldErrorHint, "check cache.redis.addr and that redis is running"),
				logging.String(logging.FieldImpact, "calculations run uncached until redis responds"),
			)
		}
		return r, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "cache", "new", fmt.Sprintf("unknown backend %q", cfg.Cache.Backend), nil)
	}
}
