// Package notify sends optional desktop and sound notifications when a
// release or changelog run finishes. Publishing a crate can take minutes;
// the notification lets the user walk away. Everything is opt-in and
// auto-disabled in CI or non-interactive sessions.
package notify

import (
	"os"

	"golang.org/x/term"
)

// OutputType selects how a notification is delivered.
type OutputType string

const (
	// OutputSound plays only an audible notification.
	OutputSound OutputType = "sound"
	// OutputVisual shows only a desktop notification.
	OutputVisual OutputType = "visual"
	// OutputBoth delivers sound and visual notifications.
	OutputBoth OutputType = "both"
)

// ValidOutputType reports whether s names a known output type.
func ValidOutputType(s string) bool {
	switch OutputType(s) {
	case OutputSound, OutputVisual, OutputBoth:
		return true
	default:
		return false
	}
}

// Config holds user preferences for notification behavior, loaded through
// the config hierarchy (env > project > user > defaults).
type Config struct {
	// Enabled is the master switch (default: false, opt-in).
	Enabled bool `koanf:"enabled" yaml:"enabled"`
	// Type selects sound, visual, or both (default: both).
	Type OutputType `koanf:"type" yaml:"type"`
	// SoundFile optionally overrides the system default sound.
	SoundFile string `koanf:"sound_file" yaml:"sound_file"`
	// OnComplete notifies when a command finishes successfully (default: true when enabled).
	OnComplete bool `koanf:"on_complete" yaml:"on_complete"`
	// OnError notifies when a command fails (default: true when enabled).
	OnError bool `koanf:"on_error" yaml:"on_error"`
}

// DefaultConfig returns the opt-in defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Type:       OutputBoth,
		OnComplete: true,
		OnError:    true,
	}
}

// Notification is a single message to deliver.
type Notification struct {
	Title   string
	Message string
	Success bool
}

// isCI checks for common CI environment variables. Overridable in tests.
var isCI = func() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive reports whether the session has a terminal attached.
// Checks stdout rather than stdin because stdin is often piped while stdout
// remains connected to the terminal. Overridable in tests.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) || term.IsTerminal(int(os.Stderr.Fd()))
}
