// Package daemonrun assembles and runs the API server process shared by
// `dvdshop serve` and dvdshopd.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
	"dvdshop/internal/daemon"
	"dvdshop/internal/logging"
	"dvdshop/internal/preflight"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// LogLevel overrides logging.level when set.
	LogLevel string
}

// Run starts the server and blocks until ctx is cancelled or the process
// receives SIGINT/SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.WithInstanceID(logger, uuid.NewString())

	c, err := cache.New(signalCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	reportPreflight(logger, preflight.RunAll(signalCtx, cfg, c))

	d, err := daemon.New(cfg, c, logger)
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Run(signalCtx); err != nil {
		return err
	}
	logger.Info("dvdshop server shutting down")
	return nil
}

func reportPreflight(logger *slog.Logger, results []preflight.Result) {
	for _, result := range preflight.Failed(results) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "run `dvdshop status` for details"),
			logging.String(logging.FieldImpact, "server continues; affected feature may be degraded"),
		)
	}
}
