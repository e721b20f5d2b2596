package cliagent

import (
	"context"
	"fmt"
	"strings"

	"github.com/raine/rust-release-tools/internal/execx"
)

const promptPlaceholder = "{{PROMPT}}"

// CustomAgent runs an arbitrary command template containing a {{PROMPT}}
// placeholder, e.g. `llm -m gpt-4o {{PROMPT}}`. The expanded command runs
// through `sh -c` so pipes and environment prefixes in the template work.
type CustomAgent struct {
	template string
	runner   execx.Runner
}

// NewCustomAgent creates a custom agent from a command template.
// The template must contain the {{PROMPT}} placeholder.
func NewCustomAgent(template string, runner execx.Runner) (*CustomAgent, error) {
	if !strings.Contains(template, promptPlaceholder) {
		return nil, fmt.Errorf("custom agent template must contain %s placeholder", promptPlaceholder)
	}
	return &CustomAgent{template: template, runner: runner}, nil
}

// Name implements Agent.
func (c *CustomAgent) Name() string { return "custom" }

// Available implements Agent. The template's leading word is assumed to be
// the executable.
func (c *CustomAgent) Available() bool {
	fields := strings.Fields(c.template)
	if len(fields) == 0 {
		return false
	}
	return execx.Available(fields[0])
}

// Generate implements Agent.
func (c *CustomAgent) Generate(ctx context.Context, prompt string, opts ExecOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, opts)
	defer cancel()

	command := c.Expand(prompt)

	out, err := c.runner.Output(ctx, opts.Dir, "sh", "-c", command)
	if err != nil {
		if terr := timeoutErr(ctx, opts, command); terr != nil {
			return "", terr
		}
		return "", fmt.Errorf("custom agent command failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Expand substitutes the shell-quoted prompt into the template.
func (c *CustomAgent) Expand(prompt string) string {
	return strings.ReplaceAll(c.template, promptPlaceholder, execx.ShellQuote(prompt))
}

// ValidateTemplate checks that a custom command template is usable.
// An empty template is valid and means "use the built-in agent".
func ValidateTemplate(template string) error {
	if template == "" {
		return nil
	}
	if !strings.Contains(template, promptPlaceholder) {
		return fmt.Errorf("custom_agent_cmd must contain %s placeholder", promptPlaceholder)
	}
	return nil
}
