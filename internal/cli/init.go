package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raine/rust-release-tools/internal/cargo"
	"github.com/raine/rust-release-tools/internal/config"
	apperrors "github.com/raine/rust-release-tools/internal/errors"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config template to .cargo-release/config.yml",
	Long: `init creates the project control directory and writes a config
template documenting every available option. Existing config files are
never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	releaseCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := cargo.FindRoot(cwd)
	if err != nil {
		return apperrors.NewArgumentError(
			"no Cargo.toml found in the current directory or any parent",
			"Run init from inside a Rust crate.",
		)
	}

	path := config.ProjectConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		return apperrors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Edit the existing file instead of re-running init.",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
