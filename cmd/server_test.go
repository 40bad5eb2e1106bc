package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	payload := `
server:
  addr: ":9090"
  max_conns: 32
storage:
  path: "data/tracker.db"
catalog:
  path: "data/jobs.json"
digest:
  top_n: 5
log:
  json: true
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Server.MaxConns != 32 {
		t.Fatalf("expected max_conns 32, got %d", cfg.Server.MaxConns)
	}
	if cfg.Storage.Path != "data/tracker.db" {
		t.Fatalf("expected storage path, got %s", cfg.Storage.Path)
	}
	if cfg.Digest.TopN != 5 {
		t.Fatalf("expected top_n 5, got %d", cfg.Digest.TopN)
	}
	if !cfg.Log.JSON {
		t.Fatalf("expected json logging enabled")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := loadConfig(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
