package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunStopsWhenContextCancelled(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\nstate_dir = %q\nlog_dir = \"\"\n\n[server]\nbind = \"127.0.0.1:0\"\n\n[cache]\nbackend = \"memory\"\n",
		filepath.Join(base, "state"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	for _, name := range []string{"HOST", "PORT", "REDIS_ENABLED", "DVDSHOP_API_TOKEN"} {
		t.Setenv(name, "")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, configPath) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	if _, err := os.Stat(filepath.Join(base, "state", "dvdshopd.lock")); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[cache]\nbackend = \"disk\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := run(context.Background(), configPath)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected config error, got %v", err)
	}
}
