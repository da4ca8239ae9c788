package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path
// (~/.config/relog/config.yml).
func UserConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "relog", "config.yml"), nil
}

// LegacyUserConfigPath returns the deprecated JSON user config path
// (~/.relog/config.json).
func LegacyUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".relog", "config.json"), nil
}

// ProjectConfigPath returns the project config path relative to the
// current directory (.relog/config.yml).
func ProjectConfigPath() string {
	return filepath.Join(".relog", "config.yml")
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return filepath.Join(".relog", "config.json")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
