package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
	"dvdshop/internal/logging"
)

// Daemon owns the API server and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  cache.Cache
	api    *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	started time.Time
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool
	PID            int
	Address        string
	LockFilePath   string
	CacheBackend   string
	CacheReachable bool
	Uptime         time.Duration
}

// New constructs a daemon. c may be nil when caching is disabled.
func New(cfg *config.Config, c cache.Cache, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "daemon")

	srv, err := newAPIServer(cfg, c, logger)
	if err != nil {
		return nil, err
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		cache:    c,
		api:      srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and begins serving.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another dvdshop server instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel
	d.started = time.Now()
	d.running.Store(true)
	d.logger.Info("dvdshop server started",
		logging.String("address", d.api.addr()),
		logging.String("lock", d.lockPath),
		logging.String(logging.FieldCacheBackend, d.cacheName()),
	)
	return nil
}

// Stop shuts the server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove "+d.lockPath+" if no server is running"),
			logging.String(logging.FieldImpact, "next start may report another instance"),
		)
	}
	d.running.Store(false)
	d.logger.Info("dvdshop server stopped")
}

// Close stops the daemon and releases the cache.
func (d *Daemon) Close() error {
	d.Stop()
	if d.cache != nil {
		return d.cache.Close()
	}
	return nil
}

// Run serves until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	d.Stop()
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (d *Daemon) Addr() string {
	return d.api.addr()
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Address:      d.api.addr(),
		LockFilePath: d.lockPath,
		CacheBackend: d.cacheName(),
	}
	if status.Running {
		status.Uptime = time.Since(d.started)
	}
	if d.cache != nil {
		status.CacheReachable = d.cache.Ping(ctx)
	}
	return status
}

func (d *Daemon) cacheName() string {
	if d.cache == nil {
		return config.CacheBackendNone
	}
	return d.cache.Name()
}
