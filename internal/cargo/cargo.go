package cargo

import (
	"context"

	"github.com/raine/rust-release-tools/internal/execx"
)

// CLI wraps the cargo executable. The binary name is configurable so tests
// and unusual toolchain setups can substitute it.
type CLI struct {
	Bin    string
	Runner execx.Runner
}

// NewCLI creates a cargo CLI wrapper with the given binary name.
// An empty bin defaults to "cargo".
func NewCLI(bin string, runner execx.Runner) *CLI {
	if bin == "" {
		bin = "cargo"
	}
	return &CLI{Bin: bin, Runner: runner}
}

// Check runs `cargo check --quiet` in dir. After a version rewrite this is
// what refreshes Cargo.lock.
func (c *CLI) Check(ctx context.Context, dir string) error {
	return c.Runner.Run(ctx, dir, c.Bin, "check", "--quiet")
}

// Publish runs `cargo publish` in dir, uploading the crate to the registry.
func (c *CLI) Publish(ctx context.Context, dir string) error {
	return c.Runner.Run(ctx, dir, c.Bin, "publish")
}

// Available reports whether the cargo binary can be found on PATH.
func (c *CLI) Available() bool {
	return execx.Available(c.Bin)
}
