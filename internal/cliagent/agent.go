// Package cliagent abstracts the text-generation CLI used for changelog
// bodies. The built-in agent is Claude Code (`claude -p`); any other tool
// can be plugged in through a {{PROMPT}} command template.
package cliagent

import (
	"context"
	"fmt"
	"time"
)

// ExecOptions controls a single generation call.
type ExecOptions struct {
	// Timeout terminates the agent after this duration. Zero means no limit.
	Timeout time.Duration
	// Dir is the working directory for the agent process.
	Dir string
}

// Agent produces text for a prompt by running an external CLI.
type Agent interface {
	// Name returns the agent's identifier (e.g. "claude", "custom").
	Name() string
	// Available reports whether the agent's executable can be found.
	Available() bool
	// Generate runs the agent and returns its captured stdout.
	Generate(ctx context.Context, prompt string, opts ExecOptions) (string, error)
}

// registry holds the built-in agents by name.
var registry = map[string]func() Agent{}

// register adds a built-in agent constructor. Called from init functions.
func register(name string, construct func() Agent) {
	registry[name] = construct
}

// Get returns a built-in agent by name, or nil if not registered.
func Get(name string) Agent {
	construct, ok := registry[name]
	if !ok {
		return nil
	}
	return construct()
}

// List returns the names of all built-in agents.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// withTimeout derives a context honoring opts.Timeout.
func withTimeout(ctx context.Context, opts ExecOptions) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// TimeoutError is returned when the agent ran past the configured timeout.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("agent timed out after %v: %s (hint: raise 'timeout' in config)", e.Timeout, e.Command)
}

// timeoutErr converts a deadline-exceeded context error into a TimeoutError
// that names the command, matching how other step failures read.
func timeoutErr(ctx context.Context, opts ExecOptions, command string) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Command: command, Timeout: opts.Timeout}
	}
	return nil
}
