package testsupport

import (
	"path/filepath"
	"testing"

	"dvdshop/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It binds to an ephemeral loopback port, uses the memory cache and keeps
// file logging off. Options are applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""
	cfgVal.Server.Bind = "127.0.0.1:0"
	cfgVal.Cache.Backend = config.CacheBackendMemory

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIToken requires bearer auth on the test server.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.APIToken = token
	}
}

// WithCacheBackend selects the cache backend.
func WithCacheBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = backend
	}
}

// WithRedisAddr switches the cache to Redis at addr.
func WithRedisAddr(addr string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = config.CacheBackendRedis
		b.cfg.Cache.Redis.Addr = addr
	}
}

// WithRateLimit enables throttling at limit requests per window with an
// empty allow-list.
func WithRateLimit(limit, windowMS int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RateLimit.Enabled = true
		b.cfg.RateLimit.Max = limit
		b.cfg.RateLimit.WindowMS = windowMS
		b.cfg.RateLimit.AllowList = nil
	}
}

// WithoutRateLimit disables throttling.
func WithoutRateLimit() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RateLimit.Enabled = false
	}
}

// WithCORS replaces the CORS origin policy.
func WithCORS(origins []string, credentials bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.CORS.AllowedOrigins = origins
		b.cfg.CORS.AllowCredentials = credentials
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.MaxBodyBytes = limit
	}
}

// WithLogDir enables file logging under the test's temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
