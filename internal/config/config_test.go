package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confview", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run load failed: %v", err)
	}
	if cfg.Endpoint == "" {
		t.Error("default config has no endpoint")
	}
	if cfg.DefaultDay != 21 {
		t.Errorf("expected default day 21, got %d", cfg.DefaultDay)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 perms, got %o", perm)
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "endpoint: https://conf.example/talks.json\ntimezone: America/New_York\ndefault_day: 12\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Endpoint != "https://conf.example/talks.json" {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.DefaultDay != 12 {
		t.Errorf("unexpected default day %d", cfg.DefaultDay)
	}
	// Zero values were normalized.
	if cfg.FetchTimeoutSeconds != 15 {
		t.Errorf("expected normalized timeout 15, got %d", cfg.FetchTimeoutSeconds)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{DefaultDay: 40}
	cfg.Normalize()

	if cfg.Endpoint == "" {
		t.Error("endpoint not defaulted")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected UTC, got %q", cfg.Timezone)
	}
	if cfg.DefaultDay != 21 {
		t.Errorf("out-of-range day not defaulted: %d", cfg.DefaultDay)
	}
	if cfg.FetchTimeout() != 15*time.Second {
		t.Errorf("unexpected fetch timeout %v", cfg.FetchTimeout())
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	if loc := cfg.Location(); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := DefaultConfig()
	original.Endpoint = "https://conf.example/feed.json"
	original.DefaultDay = 3
	if err := original.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Endpoint != original.Endpoint {
		t.Errorf("endpoint %q != %q", loaded.Endpoint, original.Endpoint)
	}
	if loaded.DefaultDay != original.DefaultDay {
		t.Errorf("default day %d != %d", loaded.DefaultDay, original.DefaultDay)
	}
}
