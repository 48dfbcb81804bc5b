package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
	"dvdshop/internal/daemonctl"
	"dvdshop/internal/logging"
	"dvdshop/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report server and dependency readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			c, err := cache.New(cmd.Context(), cfg, logging.NewNop())
			if err != nil {
				return err
			}
			if c != nil {
				defer c.Close()
			}

			snap, err := daemonctl.BuildSnapshot(cmd.Context(), cfg, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, strings.Join(statusLines(cfg, snap, colorize), "\n"))
			return nil
		},
	}
}

func statusLines(cfg *config.Config, snap daemonctl.Snapshot, colorize bool) []string {
	lines := renderSectionHeader("Server", colorize)
	serverKind := statusInfo
	if snap.Server.Passed {
		serverKind = statusOK
	} else if snap.LockHeld {
		// Lock owner exists but /health did not answer.
		serverKind = statusWarn
	}
	lines = append(lines,
		renderStatusLine(snap.Server.Name, serverKind, snap.Server.Detail, colorize),
		renderStatusLine("Instance lock", statusInfo, fmt.Sprintf("held: %s (%s)", yesNo(snap.LockHeld), cfg.LockPath()), colorize),
		renderStatusLine("Auth", statusInfo, fmt.Sprintf("bearer token required: %s", yesNo(cfg.Server.APIToken != "")), colorize),
		"",
	)

	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	failed := 0
	for _, result := range snap.Checks {
		kind := statusOK
		if !result.Passed {
			failed++
			kind = checkFailureKind(result)
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}

	summaryKind := statusOK
	summary := "All checks passed"
	if failed > 0 {
		summaryKind = statusWarn
		summary = fmt.Sprintf("%d of %d checks failed", failed, len(snap.Checks))
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	return lines
}

// checkFailureKind reports cache failures as warnings; pricing runs uncached.
func checkFailureKind(result preflight.Result) statusKind {
	if result.Name == "Cache" {
		return statusWarn
	}
	return statusError
}
