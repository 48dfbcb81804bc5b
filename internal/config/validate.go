package config

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRateLimit(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	if err := c.validateCompression(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if _, port, err := net.SplitHostPort(c.Server.Bind); err != nil || port == "" {
		return fmt.Errorf("server.bind must be host:port, got %q", c.Server.Bind)
	}
	if err := ensurePositiveMap(map[string]int{
		"server.read_timeout_seconds":  c.Server.ReadTimeoutSeconds,
		"server.write_timeout_seconds": c.Server.WriteTimeoutSeconds,
		"server.idle_timeout_seconds":  c.Server.IdleTimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendNone:
		return nil
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds <= 0 {
		return errors.New("cache.ttl_seconds must be positive")
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("cache.max_entries must be >= 0")
	}
	if c.Cache.Backend == CacheBackendRedis {
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return errors.New("cache.redis.addr must be set when cache.backend is redis")
		}
		if c.Cache.Redis.DB < 0 {
			return errors.New("cache.redis.db must be >= 0")
		}
	}
	return nil
}

func (c *Config) validateRateLimit() error {
	if !c.RateLimit.Enabled {
		return nil
	}
	if err := ensurePositiveMap(map[string]int{
		"rate_limit.max":       c.RateLimit.Max,
		"rate_limit.window_ms": c.RateLimit.WindowMS,
	}); err != nil {
		return err
	}
	for _, entry := range c.RateLimit.AllowList {
		if net.ParseIP(entry) == nil {
			return fmt.Errorf("rate_limit.allow_list: %q is not an IP address", entry)
		}
	}
	return nil
}

func (c *Config) validateCORS() error {
	if c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowedOrigins, "*") {
		return errors.New("cors.allow_credentials cannot be combined with a wildcard in cors.allowed_origins")
	}
	return nil
}

func (c *Config) validateCompression() error {
	if c.Compression.Enabled && c.Compression.MinBytes < 0 {
		return errors.New("compression.min_bytes must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
