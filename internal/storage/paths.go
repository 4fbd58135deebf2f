// Package storage archives finished fog-of-war games in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "fogchess"

// GetDataDir returns the platform-specific data directory for the server.
// - macOS: ~/Library/Application Support/fogchess/
// - Linux: $XDG_DATA_HOME/fogchess/ or ~/.local/share/fogchess/
// - Windows: %APPDATA%/fogchess/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	return filepath.Join(baseDir, appName), nil
}

// GetDatabaseDir returns (and creates) the BadgerDB directory under dataDir.
func GetDatabaseDir(dataDir string) (string, error) {
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
