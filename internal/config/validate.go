package config

import (
	"fmt"

	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/notify"
)

// Validate checks a Configuration for values that cannot work.
func Validate(cfg *Configuration) error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %d", cfg.Timeout)
	}
	if cfg.ReleaseBranch == "" {
		return fmt.Errorf("release_branch must not be empty")
	}
	if cfg.ChangelogFile == "" {
		return fmt.Errorf("changelog_file must not be empty")
	}
	if err := cliagent.ValidateTemplate(cfg.CustomAgentCmd); err != nil {
		return err
	}
	if t := string(cfg.Notifications.Type); t != "" && !notify.ValidOutputType(t) {
		return fmt.Errorf("notifications.type must be sound, visual, or both, got %q", t)
	}
	return nil
}
