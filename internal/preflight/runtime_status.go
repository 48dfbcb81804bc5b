package preflight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dvdshop/internal/api"
	"dvdshop/internal/config"
)

// CheckServer queries the health route of a running server.
func CheckServer(ctx context.Context, baseURL string) Result {
	const name = "API server"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 3 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: "not running"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%d)", resp.StatusCode)}
	}
	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unexpected health payload (%v)", err)}
	}
	detail := fmt.Sprintf("Running at %s (up %s)", base, time.Duration(health.Uptime*float64(time.Second)).Round(time.Second))
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckServerFromConfig evaluates the server configured in cfg.
func CheckServerFromConfig(ctx context.Context, cfg *config.Config) Result {
	if cfg == nil {
		return Result{Name: "API server", Detail: "Unknown"}
	}
	return CheckServer(ctx, cfg.ServerURL())
}
