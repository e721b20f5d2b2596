// Package config provides hierarchical configuration for the release tools
// using koanf. Values load with priority: environment variables
// (CARGO_RELEASE_*) > project config (.cargo-release/config.yml) > user
// config (~/.config/cargo-release/config.yml) > defaults. Legacy JSON
// project configs are still read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/execx"
	"github.com/raine/rust-release-tools/internal/notify"
)

// Configuration holds every tunable of the release tools.
type Configuration struct {
	// AgentPreset selects a built-in text-generation agent by name.
	// Currently "claude" is the only built-in.
	AgentPreset string `koanf:"agent_preset"`

	// CustomAgentCmd defines a custom agent command with a {{PROMPT}}
	// placeholder. Takes precedence over agent_preset.
	// Example: "llm -m gpt-4o {{PROMPT}}"
	CustomAgentCmd string `koanf:"custom_agent_cmd"`

	// CargoCmd, GitCmd, PrettierCmd name the external binaries.
	CargoCmd    string `koanf:"cargo_cmd"`
	GitCmd      string `koanf:"git_cmd"`
	PrettierCmd string `koanf:"prettier_cmd"`

	// ChangelogFile is the changelog path relative to the crate root.
	ChangelogFile string `koanf:"changelog_file"`

	// ReleaseBranch is the only branch releases may start from.
	ReleaseBranch string `koanf:"release_branch"`

	// StateDir holds the release checkpoint file, relative to the crate
	// root unless absolute.
	StateDir string `koanf:"state_dir"`

	// Editor opens the changelog for review before committing.
	// Empty falls back to $EDITOR, then vim.
	Editor string `koanf:"editor"`

	// Timeout bounds a single agent call, in seconds (0 = no timeout).
	Timeout int `koanf:"timeout"`

	// SkipConfirmations suppresses the pre-commit review prompt.
	// Can also be set via CARGO_RELEASE_YES.
	SkipConfirmations bool `koanf:"skip_confirmations"`

	// Notifications configures completion notifications.
	Notifications notify.Config `koanf:"notifications"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Root is the crate root the project config is resolved against.
	Root string
	// ProjectConfigPath overrides the project config path (for tests).
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Load loads configuration for the crate rooted at root.
func Load(root string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{Root: root})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warnW := opts.WarningWriter
	if warnW == nil {
		warnW = os.Stderr
	}

	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts, warnW); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("CARGO_RELEASE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = resolveStateDir(cfg.StateDir, opts.Root)
	if v := os.Getenv("CARGO_RELEASE_YES"); v != "" {
		yes, err := strconv.ParseBool(v)
		switch {
		case err != nil:
			fmt.Fprintf(warnW, "Warning: ignoring CARGO_RELEASE_YES=%q (not a boolean)\n", v)
		case yes:
			cfg.SkipConfirmations = true
		}
	}

	return &cfg, nil
}

// loadUserConfig loads the XDG user config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project YAML config, falling back to the
// deprecated JSON config with a warning.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warnW io.Writer) error {
	yamlPath := ProjectConfigPath(opts.Root)
	if opts.ProjectConfigPath != "" {
		yamlPath = opts.ProjectConfigPath
	}
	legacyPath := LegacyProjectConfigPath(opts.Root)

	switch {
	case fileExists(yamlPath):
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		if fileExists(legacyPath) {
			fmt.Fprintf(warnW, "Warning: legacy JSON config at %s is ignored (using %s)\n", legacyPath, yamlPath)
		}
	case fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		fmt.Fprintf(warnW, "Warning: using deprecated JSON config at %s\n", legacyPath)
		fmt.Fprintf(warnW, "  Rewrite it as %s to silence this warning.\n", yamlPath)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// CARGO_RELEASE_RELEASE_BRANCH -> release_branch
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CARGO_RELEASE_"))
}

// resolveStateDir anchors a relative state dir at the crate root.
func resolveStateDir(stateDir, root string) string {
	if stateDir == "" {
		stateDir = ControlDirName
	}
	if filepath.IsAbs(stateDir) {
		return stateDir
	}
	return filepath.Join(root, stateDir)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Agent returns the configured text-generation agent.
// Priority: custom_agent_cmd > agent_preset > built-in claude.
func (c *Configuration) Agent(runner execx.Runner) (cliagent.Agent, error) {
	if c.CustomAgentCmd != "" {
		return cliagent.NewCustomAgent(c.CustomAgentCmd, runner)
	}
	if c.AgentPreset != "" && c.AgentPreset != "claude" {
		if agent := cliagent.Get(c.AgentPreset); agent != nil {
			return agent, nil
		}
		return nil, fmt.Errorf("unknown agent preset %q; available: %v", c.AgentPreset, cliagent.List())
	}
	return cliagent.NewClaude(runner), nil
}

// EditorCommand resolves the editor to open the changelog with.
func (c *Configuration) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "vim"
}
