package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults for transfer and download tuning.
const (
	DefaultMaxConcurrent   = 100
	DefaultDownloadWorkers = 4
)

// Config holds all fapack settings.
type Config struct {
	// Package build settings
	SourceDir string `json:"source_dir"` // Extracted FontAwesome distribution
	OutputDir string `json:"output_dir"` // Where the LaTeX package is assembled

	// Folder transfer settings
	MaxConcurrent int `json:"max_concurrent"` // Simultaneous in-flight file operations

	// Download settings
	DownloadWorkers int `json:"download_workers"` // Parallel range requests per download

	// Proxy settings: "no-proxy", "system", "basic" or "ntlm"
	ProxyMode     string `json:"proxy_mode"`
	ProxyHost     string `json:"proxy_host"`
	ProxyPort     string `json:"proxy_port"`
	ProxyUser     string `json:"proxy_user"`
	ProxyPassword string `json:"-"` // Never persisted
	NoProxy       string `json:"no_proxy"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:       "fontawesome",
		OutputDir:       "output",
		MaxConcurrent:   DefaultMaxConcurrent,
		DownloadWorkers: DefaultDownloadWorkers,
		ProxyMode:       "no-proxy",
	}
}

// Load reads the config file at path. A missing file is not an error;
// defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.applyBounds()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Set updates one field by its CLI key name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "source-dir":
		c.SourceDir = value
	case "output-dir":
		c.OutputDir = value
	case "max-concurrent":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max-concurrent must be a positive integer")
		}
		c.MaxConcurrent = n
	case "download-workers":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("download-workers must be a positive integer")
		}
		c.DownloadWorkers = n
	case "proxy-mode":
		switch value {
		case "no-proxy", "system", "basic", "ntlm":
			c.ProxyMode = value
		default:
			return fmt.Errorf("proxy-mode must be no-proxy, system, basic or ntlm")
		}
	case "proxy-host":
		c.ProxyHost = value
	case "proxy-port":
		c.ProxyPort = value
	case "proxy-user":
		c.ProxyUser = value
	case "no-proxy":
		c.NoProxy = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// applyBounds clamps out-of-range values back to defaults.
func (c *Config) applyBounds() {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.DownloadWorkers <= 0 {
		c.DownloadWorkers = DefaultDownloadWorkers
	}
	if c.ProxyMode == "" {
		c.ProxyMode = "no-proxy"
	}
}
