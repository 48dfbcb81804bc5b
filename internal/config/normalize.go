package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeRateLimit(); err != nil {
		return err
	}
	c.normalizeCORS()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}

	host, port, err := net.SplitHostPort(c.Server.Bind)
	if err != nil {
		return fmt.Errorf("server.bind: %w", err)
	}
	if value, ok := os.LookupEnv("HOST"); ok && strings.TrimSpace(value) != "" {
		host = strings.TrimSpace(value)
	}
	envPort, ok, err := atoiEnv("PORT")
	if err != nil {
		return err
	}
	if ok {
		port = strconv.Itoa(envPort)
	}
	if host == "" {
		host = defaultHost
	}
	c.Server.Bind = net.JoinHostPort(host, port)

	c.Server.APIToken = strings.TrimSpace(c.Server.APIToken)
	if c.Server.APIToken == "" {
		if value, ok := os.LookupEnv("DVDSHOP_API_TOKEN"); ok {
			c.Server.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	return nil
}

func (c *Config) normalizeCache() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}

	if value, ok := os.LookupEnv("REDIS_ENABLED"); ok && strings.TrimSpace(value) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("REDIS_ENABLED: %q is not a boolean", value)
		}
		switch {
		case enabled:
			c.Cache.Backend = CacheBackendRedis
		case c.Cache.Backend == CacheBackendRedis:
			c.Cache.Backend = CacheBackendMemory
		}
	}

	c.Cache.Redis.Addr = strings.TrimSpace(c.Cache.Redis.Addr)
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = defaultRedisAddr
	}
	host, port, err := net.SplitHostPort(c.Cache.Redis.Addr)
	if err != nil {
		return fmt.Errorf("cache.redis.addr: %w", err)
	}
	if value, ok := os.LookupEnv("REDIS_HOST"); ok && strings.TrimSpace(value) != "" {
		host = strings.TrimSpace(value)
	}
	envPort, ok, err := atoiEnv("REDIS_PORT")
	if err != nil {
		return err
	}
	if ok {
		port = strconv.Itoa(envPort)
	}
	c.Cache.Redis.Addr = net.JoinHostPort(host, port)

	if c.Cache.Redis.Password == "" {
		if value, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
			c.Cache.Redis.Password = value
		}
	}
	if c.Cache.Redis.KeyPrefix == "" {
		c.Cache.Redis.KeyPrefix = defaultRedisKeyPrefix
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = defaultCacheTTLSeconds
	}
	return nil
}

func (c *Config) normalizeRateLimit() error {
	limit, ok, err := atoiEnv("RATE_LIMIT_MAX")
	if err != nil {
		return err
	}
	if ok {
		c.RateLimit.Max = limit
	}
	window, ok, err := atoiEnv("RATE_LIMIT_TIMEWINDOW")
	if err != nil {
		return err
	}
	if ok {
		c.RateLimit.WindowMS = window
	}
	c.RateLimit.AllowList = trimList(c.RateLimit.AllowList)
	return nil
}

func (c *Config) normalizeCORS() {
	c.CORS.AllowedOrigins = trimList(c.CORS.AllowedOrigins)
	methods := trimList(c.CORS.AllowedMethods)
	for i, method := range methods {
		methods[i] = strings.ToUpper(method)
	}
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "OPTIONS"}
	}
	c.CORS.AllowedMethods = methods
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
