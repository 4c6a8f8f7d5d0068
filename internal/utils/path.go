package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDir returns the platform-appropriate directory for
// lexiserve's config file, honoring XDG_CONFIG_HOME on Linux
// and APPDATA on Windows the way a well-behaved CLI tool resolves its
// own state directory.
func DefaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "lexiserve")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "lexiserve")
		}
		return filepath.Join(homeDir, ".config", "lexiserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "lexiserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "lexiserve")
	default:
		return filepath.Join(homeDir, ".lexiserve")
	}
}
