package daemon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"dvdshop/internal/api"
	"dvdshop/internal/cache"
	"dvdshop/internal/daemon"
	"dvdshop/internal/logging"
	"dvdshop/internal/testsupport"
)

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c, err := cache.New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	d, err := daemon.New(cfg, c, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.CacheBackend != "memory" || !status.CacheReachable {
		t.Fatalf("unexpected cache status: %+v", status)
	}
	if status.LockFilePath != cfg.LockPath() {
		t.Fatalf("lock path = %q, want %q", status.LockFilePath, cfg.LockPath())
	}

	resp, err := http.Post("http://"+d.Addr()+"/v1/calculate", "application/json",
		strings.NewReader(`{"movies":["Back to the Future","Back to the Future II","Back to the Future III"]}`))
	if err != nil {
		t.Fatalf("POST /v1/calculate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var priced api.CalculateResponse
	if err := json.NewDecoder(resp.Body).Decode(&priced); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if priced.Total != 36 {
		t.Fatalf("total = %v, want 36", priced.Total)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	time.Sleep(50 * time.Millisecond)
	status = d.Status(ctx)
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonSingleInstancePerStateDir(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCacheBackend("none"))

	first, err := daemon.New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { first.Close() })
	second, err := daemon.New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := second.Start(ctx); err == nil || !strings.Contains(err.Error(), "already running") {
		t.Fatalf("expected lock contention error, got %v", err)
	}
	if status := second.Status(ctx); status.Running || status.CacheBackend != "none" {
		t.Fatalf("unexpected second status: %+v", status)
	}
}

func TestDaemonRunStopsOnCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for d.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if d.Addr() == "" {
		t.Fatal("daemon did not start listening")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
