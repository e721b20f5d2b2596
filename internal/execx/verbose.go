package execx

import (
	"context"
	"fmt"
	"io"
)

// Verbose wraps a Runner and echoes every command before running it.
type Verbose struct {
	Runner Runner
	W      io.Writer
}

// NewVerbose creates a command-echoing wrapper around runner.
func NewVerbose(runner Runner, w io.Writer) *Verbose {
	return &Verbose{Runner: runner, W: w}
}

func (v *Verbose) Run(ctx context.Context, dir string, name string, args ...string) error {
	fmt.Fprintf(v.W, "+ %s\n", FormatCommand(name, args))
	return v.Runner.Run(ctx, dir, name, args...)
}

func (v *Verbose) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	fmt.Fprintf(v.W, "+ %s\n", FormatCommand(name, args))
	return v.Runner.Output(ctx, dir, name, args...)
}
