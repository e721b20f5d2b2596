package config

import "github.com/raine/rust-release-tools/internal/notify"

// GetDefaults returns the default configuration values as koanf keys.
func GetDefaults() map[string]interface{} {
	n := notify.DefaultConfig()
	return map[string]interface{}{
		"agent_preset":         "",
		"custom_agent_cmd":     "",
		"cargo_cmd":            "cargo",
		"git_cmd":              "git",
		"prettier_cmd":         "prettier",
		"changelog_file":       "CHANGELOG.md",
		"release_branch":       "main",
		"state_dir":            ControlDirName,
		"editor":               "",
		"timeout":              300,
		"skip_confirmations":   false,
		"notifications.enabled":     n.Enabled,
		"notifications.type":        string(n.Type),
		"notifications.sound_file":  n.SoundFile,
		"notifications.on_complete": n.OnComplete,
		"notifications.on_error":    n.OnError,
	}
}

// GetDefaultConfigTemplate returns a fully commented config template that
// documents every available option.
func GetDefaultConfigTemplate() string {
	return `# cargo-release configuration
# Project config: .cargo-release/config.yml
# User config:    ~/.config/cargo-release/config.yml
# Every key can be overridden via CARGO_RELEASE_<KEY> environment variables.

# Text generation
agent_preset: ""              # Built-in agent: claude
custom_agent_cmd: ""          # Custom command with {{PROMPT}} placeholder
timeout: 300                  # Agent timeout in seconds (0 = no timeout)

# External tools
cargo_cmd: cargo
git_cmd: git
prettier_cmd: prettier

# Release settings
changelog_file: CHANGELOG.md  # Changelog path relative to the crate root
release_branch: main          # Releases may only start from this branch
state_dir: .cargo-release     # Where the release checkpoint file lives
editor: ""                    # Changelog review editor (default: $EDITOR, then vim)
skip_confirmations: false     # Skip the pre-commit review prompt

# Notifications (opt-in)
notifications:
  enabled: false
  type: both                  # sound | visual | both
  sound_file: ""              # Custom sound file (empty = system default)
  on_complete: true
  on_error: true
`
}
