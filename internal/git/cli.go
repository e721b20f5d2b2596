package git

import (
	"context"

	"github.com/raine/rust-release-tools/internal/execx"
)

// CLI wraps the git executable for mutating operations. go-git could perform
// most of these in-process, but shelling out keeps commit hooks, signing,
// and push credentials working exactly as they do for the user.
type CLI struct {
	Bin    string
	Runner execx.Runner
}

// NewCLI creates a git CLI wrapper. An empty bin defaults to "git".
func NewCLI(bin string, runner execx.Runner) *CLI {
	if bin == "" {
		bin = "git"
	}
	return &CLI{Bin: bin, Runner: runner}
}

// Add stages the given paths.
func (g *CLI) Add(ctx context.Context, dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return g.Runner.Run(ctx, dir, g.Bin, args...)
}

// Commit creates a commit with the given message.
func (g *CLI) Commit(ctx context.Context, dir, message string) error {
	return g.Runner.Run(ctx, dir, g.Bin, "commit", "-m", message)
}

// TagAnnotated creates an annotated tag.
func (g *CLI) TagAnnotated(ctx context.Context, dir, name, message string) error {
	return g.Runner.Run(ctx, dir, g.Bin, "tag", "-a", name, "-m", message)
}

// Push pushes the current branch, then tags.
func (g *CLI) Push(ctx context.Context, dir string) error {
	if err := g.Runner.Run(ctx, dir, g.Bin, "push"); err != nil {
		return err
	}
	return g.Runner.Run(ctx, dir, g.Bin, "push", "--tags")
}

// Available reports whether the git binary can be found on PATH.
func (g *CLI) Available() bool {
	return execx.Available(g.Bin)
}
