// Package execx abstracts external command execution behind a small Runner
// interface. Every tool this project shells out to (git, cargo, prettier,
// the text-generation CLI, the user's editor) goes through a Runner, which
// gives tests a single seam to substitute a recording fake.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands rooted at a working directory.
// An empty dir means the current working directory.
type Runner interface {
	// Run executes the command with stdio inherited from the parent process.
	// Interactive tools (editors, cargo publish progress) need this.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// Output executes the command and returns its captured stdout.
	// Stderr is captured separately and included in the error on failure.
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", FormatCommand(name, args), err)
	}
	return nil
}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", FormatCommand(name, args), err, msg)
		}
		return "", fmt.Errorf("running %s: %w", FormatCommand(name, args), err)
	}
	return stdout.String(), nil
}

// Available reports whether an executable can be found on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// FormatCommand returns a human-readable command line for display and errors.
func FormatCommand(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// ShellQuote quotes a string for safe interpolation into an sh -c command.
// The string is wrapped in single quotes with embedded quotes escaped.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
