// Package config provides configuration management for fapack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDataDir returns the per-user application data directory for fapack.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\fapack
//   - macOS:   ~/Library/Application Support/fapack
//   - Linux:   ~/.local/share/fapack
func AppDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot resolve app data directory: %w", err)
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "fapack"), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve app data directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Application Support", "fapack"), nil

	default:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve app data directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share", "fapack"), nil
	}
}

// DefaultConfigPath returns the default location of the config file.
func DefaultConfigPath() string {
	dir, err := AppDataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fapack", "config.json")
	}
	return filepath.Join(dir, "config.json")
}

// EnsureAppDataDir creates the application data directory if it doesn't exist.
func EnsureAppDataDir() (string, error) {
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app data directory: %w", err)
	}
	return dir, nil
}
