package preflight

import (
	"context"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// c is the cache built from cfg, or nil when caching is disabled.
func RunAll(ctx context.Context, cfg *config.Config, c cache.Cache) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// State directory (always checked, holds the server lock)
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	// Log directory (when file logging is configured)
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	results = append(results, CheckCache(ctx, cfg.Cache.Backend, c))

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
