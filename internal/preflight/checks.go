package preflight

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
)

const cacheCheckTimeout = 3 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCache verifies the configured cache backend answers a ping. A disabled
// cache passes.
func CheckCache(ctx context.Context, backend string, c cache.Cache) Result {
	const name = "Cache"

	if backend == config.CacheBackendNone || backend == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	if c == nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s backend not initialized", backend)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, cacheCheckTimeout)
	defer cancel()
	if !c.Ping(checkCtx) {
		return Result{Name: name, Detail: fmt.Sprintf("%s unreachable (calculations run uncached)", c.Name())}
	}
	stats, err := c.Stats(checkCtx)
	if err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable (stats unavailable: %v)", c.Name(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable (%d keys)", c.Name(), stats.Keys)}
}
