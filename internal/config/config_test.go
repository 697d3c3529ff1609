package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Paths.SpoolDir == "" {
		t.Fatal("default spool dir empty")
	}
	if cfg.Paths.LockFile != cfg.Paths.SpoolDir+".lock" {
		t.Fatalf("derived lock file: %q", cfg.Paths.LockFile)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path: got %q, want %q", resolved, path)
	}
	if cfg.Queue.Ordering != OrderingSequence {
		t.Fatalf("default ordering: %q", cfg.Queue.Ordering)
	}
}

func TestLoadOverridesAndConversions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
spool_dir = "` + filepath.Join(dir, "items") + `"

[queue]
ordering = "timestamp"
sweep_age_minutes = 90

[watch]
enabled = false
debounce_ms = 250
poll_interval_ms = 50

[consumer]
ack_every = 8

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("file not detected")
	}
	if cfg.Queue.Ordering != OrderingTimestamp {
		t.Fatalf("ordering: %q", cfg.Queue.Ordering)
	}
	if cfg.SweepAge() != 90*time.Minute {
		t.Fatalf("sweep age: %v", cfg.SweepAge())
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Fatalf("debounce: %v", cfg.Debounce())
	}
	if cfg.PollInterval() != 50*time.Millisecond {
		t.Fatalf("poll interval: %v", cfg.PollInterval())
	}
	if cfg.Watch.Enabled {
		t.Fatal("watch should be disabled")
	}
	if cfg.Consumer.AckEvery != 8 {
		t.Fatalf("ack every: %d", cfg.Consumer.AckEvery)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadOrdering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[queue]\nordering = \"priority\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "queue.ordering") {
		t.Fatalf("load: got %v, want ordering validation error", err)
	}
}

func TestSampleConfigLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file not detected")
	}
	// The sample documents the defaults; everything is commented out.
	if cfg.Queue.Ordering != OrderingSequence || cfg.Consumer.AckEvery != 1 {
		t.Fatalf("sample drifted from defaults: %+v", cfg)
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/spool/items")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "spool", "items") {
		t.Fatalf("expanded path: %q", got)
	}
}
