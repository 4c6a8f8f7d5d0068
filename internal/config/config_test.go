package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 7700 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.CLI.DefaultLimit != 15 {
		t.Fatalf("unexpected default CLI limit: %d", cfg.CLI.DefaultLimit)
	}
}

func TestInitConfigCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if cfg.Server.Port != DefaultConfig().Server.Port {
		t.Fatalf("expected default config to be created")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected created file to load: %v", err)
	}
	if loaded.Server.Port != cfg.Server.Port {
		t.Fatalf("loaded config mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Fatalf("expected port 9999 after round-trip, got %d", loaded.Server.Port)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	w, err := NewWatcher(path, cfg)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	updated := DefaultConfig()
	updated.Server.Port = 12345
	if err := SaveConfig(updated, path); err != nil {
		t.Fatalf("save update failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if w.Current().Server.Port == 12345 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("expected watcher to pick up config change within deadline")
}
