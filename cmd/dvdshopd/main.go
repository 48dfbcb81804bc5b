// Command dvdshopd runs the dvdshop pricing API until it receives SIGINT or
// SIGTERM. The configuration file is taken from DVDSHOP_CONFIG when set and
// resolved from the default locations otherwise.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"dvdshop/internal/config"
	"dvdshop/internal/daemonrun"
)

func main() {
	if err := run(context.Background(), os.Getenv("DVDSHOP_CONFIG")); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, _, _, err := config.Load(strings.TrimSpace(configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return daemonrun.Run(ctx, cfg, daemonrun.Options{})
}
