package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raine/rust-release-tools/internal/cargo"
	"github.com/raine/rust-release-tools/internal/changelog"
	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/config"
	apperrors "github.com/raine/rust-release-tools/internal/errors"
	"github.com/raine/rust-release-tools/internal/execx"
	"github.com/raine/rust-release-tools/internal/git"
	"github.com/raine/rust-release-tools/internal/progress"
	"github.com/raine/rust-release-tools/internal/release"
)

// environment bundles everything both commands need: the crate root, the
// merged configuration and the process runner.
type environment struct {
	Root   string
	Config *config.Configuration
	Runner execx.Runner
}

// loadEnvironment locates the crate root from the working directory and
// loads configuration. configPath overrides the project config file.
func loadEnvironment(configPath string) (*environment, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	root, err := cargo.FindRoot(wd)
	if err != nil {
		return nil, apperrors.NewArgumentError(
			"no Cargo.toml found in this directory or any parent",
			"Run from inside a Rust crate.",
		)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Root:              root,
		ProjectConfigPath: configPath,
		WarningWriter:     os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	var runner execx.Runner = execx.ExecRunner{}
	if debugFlag {
		runner = execx.NewVerbose(runner, os.Stderr)
	}
	return &environment{Root: root, Config: cfg, Runner: runner}, nil
}

// agent resolves the configured generation agent and verifies its binary
// is installed.
func (e *environment) agent() (cliagent.Agent, error) {
	agent, err := e.Config.Agent(e.Runner)
	if err != nil {
		return nil, err
	}
	if !agent.Available() {
		return nil, apperrors.MissingTool(agent.Name(), "generating changelog entries")
	}
	return agent, nil
}

// generator builds the changelog generator from the environment.
func (e *environment) generator() (*changelog.Generator, error) {
	agent, err := e.agent()
	if err != nil {
		return nil, err
	}
	return &changelog.Generator{
		Root:        e.Root,
		Path:        filepath.Join(e.Root, e.Config.ChangelogFile),
		Agent:       agent,
		Runner:      e.Runner,
		PrettierCmd: e.Config.PrettierCmd,
		Timeout:     time.Duration(e.Config.Timeout) * time.Second,
		Out:         os.Stdout,
		Spinner:     progress.New(progress.Detect()),
	}, nil
}

// sequencer builds the release sequencer, checking the external tools it
// shells out to.
func (e *environment) sequencer(dryRun bool) (*release.Sequencer, error) {
	cargoCLI := cargo.NewCLI(e.Config.CargoCmd, e.Runner)
	if !cargoCLI.Available() {
		return nil, apperrors.MissingTool(e.Config.CargoCmd, "building and publishing the crate")
	}
	gitCLI := git.NewCLI(e.Config.GitCmd, e.Runner)
	if !gitCLI.Available() {
		return nil, apperrors.MissingTool(e.Config.GitCmd, "committing and tagging the release")
	}

	gen, err := e.generator()
	if err != nil {
		return nil, err
	}

	return &release.Sequencer{
		Root:      e.Root,
		Config:    e.Config,
		Cargo:     cargoCLI,
		Git:       gitCLI,
		Generator: gen,
		Runner:    e.Runner,
		Out:       os.Stdout,
		Confirm:   askYesNo,
		DryRun:    dryRun,
	}, nil
}

// askYesNo prompts on stdout and reads one line from stdin. Anything but
// y/yes declines.
func askYesNo(prompt string) (bool, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
