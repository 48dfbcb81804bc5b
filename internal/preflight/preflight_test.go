package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dvdshop/internal/cache"
	"dvdshop/internal/logging"
	"dvdshop/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCache(t *testing.T) {
	ctx := context.Background()

	if r := CheckCache(ctx, "none", nil); !r.Passed || r.Detail != "Disabled" {
		t.Fatalf("disabled cache should pass, got %+v", r)
	}
	if r := CheckCache(ctx, "memory", nil); r.Passed {
		t.Fatalf("missing cache should fail, got %+v", r)
	}

	mem := cache.NewMemory(cache.MemoryOptions{}, logging.NewNop())
	t.Cleanup(func() { _ = mem.Close() })
	if r := CheckCache(ctx, "memory", mem); !r.Passed || !strings.Contains(r.Detail, "0 keys") {
		t.Fatalf("memory cache should pass, got %+v", r)
	}

	mr := testsupport.StartRedis(t)
	red := cache.NewRedis(cache.RedisOptions{Addr: mr.Addr()}, logging.NewNop())
	t.Cleanup(func() { _ = red.Close() })
	if r := CheckCache(ctx, "redis", red); !r.Passed {
		t.Fatalf("redis cache should pass, got %+v", r)
	}
	mr.Close()
	if r := CheckCache(ctx, "redis", red); r.Passed || !strings.Contains(r.Detail, "unreachable") {
		t.Fatalf("stopped redis should fail, got %+v", r)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLogDir())
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	c, err := cache.New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	results := RunAll(context.Background(), cfg, c)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAllReportsMissingStateDir(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCacheBackend("none"))
	results := RunAll(context.Background(), cfg, nil)
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "State directory" {
		t.Fatalf("expected state directory failure, got %+v", results)
	}
}

func TestCheckServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2026-01-01T00:00:00.000Z","uptime":61.2}`))
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), srv.URL)
	if !result.Passed || !strings.Contains(result.Detail, "1m1s") {
		t.Fatalf("expected pass, got: %+v", result)
	}
}

func TestCheckServer_NotRunning(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	result := CheckServer(context.Background(), url)
	if result.Passed || result.Detail != "not running" {
		t.Fatalf("expected not running, got: %+v", result)
	}
}

func TestCheckServer_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), srv.URL)
	if result.Passed || !strings.Contains(result.Detail, "503") {
		t.Fatalf("expected failure, got: %+v", result)
	}
}
