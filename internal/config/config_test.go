package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("MaxConcurrent = %d, want %d", cfg.MaxConcurrent, DefaultMaxConcurrent)
	}
	if cfg.DownloadWorkers != DefaultDownloadWorkers {
		t.Errorf("DownloadWorkers = %d, want %d", cfg.DownloadWorkers, DefaultDownloadWorkers)
	}
	if cfg.ProxyMode != "no-proxy" {
		t.Errorf("ProxyMode = %q, want no-proxy", cfg.ProxyMode)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.SourceDir = "/data/fontawesome"
	cfg.MaxConcurrent = 16
	cfg.ProxyMode = "basic"
	cfg.ProxyHost = "proxy.local"
	cfg.ProxyPassword = "secret"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.SourceDir != "/data/fontawesome" {
		t.Errorf("SourceDir = %q", loaded.SourceDir)
	}
	if loaded.MaxConcurrent != 16 {
		t.Errorf("MaxConcurrent = %d, want 16", loaded.MaxConcurrent)
	}
	if loaded.ProxyHost != "proxy.local" {
		t.Errorf("ProxyHost = %q", loaded.ProxyHost)
	}
	// Passwords must never be written to disk
	if loaded.ProxyPassword != "" {
		t.Errorf("ProxyPassword persisted: %q", loaded.ProxyPassword)
	}
}

func TestLoadClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"max_concurrent": -5, "download_workers": 0}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("MaxConcurrent = %d, want default %d", cfg.MaxConcurrent, DefaultMaxConcurrent)
	}
	if cfg.DownloadWorkers != DefaultDownloadWorkers {
		t.Errorf("DownloadWorkers = %d, want default %d", cfg.DownloadWorkers, DefaultDownloadWorkers)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed JSON")
	}
}
