package config

import (
	"os"
	"path/filepath"
)

// ControlDirName is the project control directory holding config and
// release state.
const ControlDirName = ".cargo-release"

// UserConfigPath returns the user-level config file path, following the
// XDG Base Directory Specification via os.UserConfigDir:
// - Linux: ~/.config/cargo-release/config.yml
// - macOS: ~/Library/Application Support/cargo-release/config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cargo-release", "config.yml"), nil
}

// ProjectConfigPath returns the project-level config file path inside the
// crate's control directory.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ControlDirName, "config.yml")
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
// Still loaded with a warning so existing setups keep working.
func LegacyProjectConfigPath(root string) string {
	return filepath.Join(root, ControlDirName, "config.json")
}
