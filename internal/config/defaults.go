package config

const (
	defaultConfigPath       = "~/.config/dvdshop/config.toml"
	projectConfigName       = "dvdshop.toml"
	defaultStateDirFallback = "~/.local/state/dvdshop"
	defaultLogDir           = "~/.local/state/dvdshop/logs"
	defaultHost             = "0.0.0.0"
	defaultPort             = 5000
	defaultBind             = "0.0.0.0:5000"
	defaultReadTimeout      = 10
	defaultWriteTimeout     = 30
	defaultIdleTimeout      = 60
	defaultMaxBodyBytes     = 1 << 20
	defaultCacheBackend     = "memory"
	defaultCacheTTLSeconds  = 3600
	defaultCacheMaxEntries  = 1000
	defaultRedisAddr        = "127.0.0.1:6379"
	defaultRedisKeyPrefix   = "dvd:"
	defaultRateLimitMax     = 100
	defaultRateLimitWindow  = 60000
	defaultCompressionMin   = 1024
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Cache backend names.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
			LogDir:   defaultLogDir,
		},
		Server: Server{
			Bind:                defaultBind,
			ReadTimeoutSeconds:  defaultReadTimeout,
			WriteTimeoutSeconds: defaultWriteTimeout,
			IdleTimeoutSeconds:  defaultIdleTimeout,
			MaxBodyBytes:        defaultMaxBodyBytes,
		},
		Cache: Cache{
			Backend:    defaultCacheBackend,
			TTLSeconds: defaultCacheTTLSeconds,
			MaxEntries: defaultCacheMaxEntries,
			Redis: Redis{
				Addr:      defaultRedisAddr,
				KeyPrefix: defaultRedisKeyPrefix,
			},
		},
		RateLimit: RateLimit{
			Enabled:   true,
			Max:       defaultRateLimitMax,
			WindowMS:  defaultRateLimitWindow,
			AllowList: []string{"127.0.0.1", "::1"},
		},
		CORS: CORS{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		},
		Compression: Compression{
			Enabled:  true,
			MinBytes: defaultCompressionMin,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
