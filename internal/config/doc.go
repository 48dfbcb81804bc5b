// Package config loads, normalizes, and validates dvdshop configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment variables the
// service has always been deployed with (PORT, HOST, REDIS_HOST and friends).
// The Config type centralizes every knob the API server and CLI need: bind
// address, cache backend, rate limiting, CORS and compression.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
