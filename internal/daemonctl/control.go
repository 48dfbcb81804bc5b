// Package daemonctl inspects a dvdshop server from outside its process.
package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
	"dvdshop/internal/preflight"
)

// Snapshot is what `dvdshop status` reports.
type Snapshot struct {
	// LockHeld reports whether a server currently owns the state directory.
	LockHeld bool
	Server   preflight.Result
	Checks   []preflight.Result
}

// LockHeld reports whether another process holds the server lock at
// lockPath. A missing lock file means no server has run there.
func LockHeld(lockPath string) (bool, error) {
	if _, err := os.Stat(lockPath); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe lock %s: %w", lockPath, err)
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}

// BuildSnapshot gathers lock state, server health and preflight checks.
// c is the cache built from cfg, or nil when caching is disabled.
func BuildSnapshot(ctx context.Context, cfg *config.Config, c cache.Cache) (Snapshot, error) {
	if cfg == nil {
		return Snapshot{}, errors.New("config is required")
	}
	held, err := LockHeld(cfg.LockPath())
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		LockHeld: held,
		Server:   preflight.CheckServerFromConfig(ctx, cfg),
		Checks:   preflight.RunAll(ctx, cfg, c),
	}, nil
}
