package cliagent

import (
	"context"
	"fmt"
	"strings"

	"github.com/raine/rust-release-tools/internal/execx"
)

// Claude runs the Claude Code CLI in print mode: claude -p <prompt>.
type Claude struct {
	Bin    string
	Args   []string
	Runner execx.Runner
}

func init() {
	register("claude", func() Agent {
		return NewClaude(execx.ExecRunner{})
	})
}

// NewClaude creates the built-in Claude agent.
func NewClaude(runner execx.Runner) *Claude {
	return &Claude{
		Bin:    "claude",
		Args:   []string{"-p"},
		Runner: runner,
	}
}

// Name implements Agent.
func (c *Claude) Name() string { return "claude" }

// Available implements Agent.
func (c *Claude) Available() bool { return execx.Available(c.Bin) }

// Generate implements Agent. The prompt is passed as the final argument and
// stdout is captured as the generated text.
func (c *Claude) Generate(ctx context.Context, prompt string, opts ExecOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, opts)
	defer cancel()

	args := append(append([]string{}, c.Args...), prompt)
	command := execx.FormatCommand(c.Bin, c.Args)

	out, err := c.Runner.Output(ctx, opts.Dir, c.Bin, args...)
	if err != nil {
		if terr := timeoutErr(ctx, opts, command); terr != nil {
			return "", terr
		}
		return "", fmt.Errorf("claude command failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
