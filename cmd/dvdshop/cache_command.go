package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dvdshop/internal/cache"
	"dvdshop/internal/config"
	"dvdshop/internal/logging"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the calculation cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCachePingCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache hits, misses and key count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(c cache.Cache) error {
				stats, err := c.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("cache stats: %w", err)
				}
				if asJSON {
					return writeJSON(cmd, stats)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Backend", "Hits", "Misses", "Keys", "Hit rate"},
					[][]string{{
						c.Name(),
						strconv.FormatInt(stats.Hits, 10),
						strconv.FormatInt(stats.Misses, 10),
						strconv.FormatInt(stats.Keys, 10),
						strconv.FormatFloat(stats.HitRate, 'f', 2, 64) + "%",
					}},
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				if c.Name() == config.CacheBackendMemory {
					fmt.Fprintln(out, "Note: the memory backend lives inside the server process; these figures cover this CLI process only.")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit stats as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached calculation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(c cache.Cache) error {
				if err := c.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				c.ResetStats()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s cache\n", c.Name())
				return nil
			})
		},
	}
}

func newCachePingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the cache backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(c cache.Cache) error {
				if !c.Ping(cmd.Context()) {
					return fmt.Errorf("%s cache unreachable", c.Name())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s cache reachable\n", c.Name())
				return nil
			})
		},
	}
}

var errCacheDisabled = errors.New("cache disabled (cache.backend = \"none\")")

func withCache(cmd *cobra.Command, ctx *commandContext, fn func(cache.Cache) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	c, err := cache.New(cmd.Context(), cfg, logging.NewNop())
	if err != nil {
		return err
	}
	if c == nil {
		return errCacheDisabled
	}
	defer c.Close()
	return fn(c)
}
