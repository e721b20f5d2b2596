package cli

import (
	"github.com/spf13/cobra"

	"github.com/raine/rust-release-tools/internal/build"
	apperrors "github.com/raine/rust-release-tools/internal/errors"
	"github.com/raine/rust-release-tools/internal/lifecycle"
	"github.com/raine/rust-release-tools/internal/notify"
	"github.com/raine/rust-release-tools/internal/release"
)

var (
	configFlag   string
	yesFlag      bool
	debugFlag    bool
	dryRunFlag   bool
	continueFlag bool
	abortFlag    bool
)

var releaseCmd = &cobra.Command{
	Use:   "cargo-release [patch|minor|major|current]",
	Short: "Release the Rust crate in the current directory",
	Long: `cargo-release runs the full release sequence for a Rust crate:
version bump, AI-generated changelog entry, commit, annotated tag,
cargo publish and git push.

Progress is checkpointed after every step. If a step fails, fix the
cause and run cargo-release --continue to resume from where it stopped.

The changelog entry is written by a CLI coding agent (claude by default,
configurable via agent_preset or custom_agent_cmd).`,
	Example: `  cargo-release patch           # 1.2.3 -> 1.2.4
  cargo-release minor           # 1.2.3 -> 1.3.0
  cargo-release major           # 1.2.3 -> 2.0.0
  cargo-release current         # release the version already in Cargo.toml
  cargo-release patch --dry-run # prepare files, touch nothing in git
  cargo-release --continue      # resume a failed release
  cargo-release --abort         # discard a failed release's checkpoint`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       build.String(),
	RunE:          runRelease,
}

func init() {
	releaseCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to project config file")
	releaseCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the changelog review and confirmation prompt")
	releaseCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Print executed commands")

	releaseCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Prepare the release without committing, tagging, publishing or pushing")
	releaseCmd.Flags().BoolVar(&continueFlag, "continue", false, "Resume the release recorded in the checkpoint file")
	releaseCmd.Flags().BoolVar(&abortFlag, "abort", false, "Discard the checkpoint of an in-flight release")
}

func runRelease(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(configFlag)
	if err != nil {
		return err
	}
	if yesFlag {
		env.Config.SkipConfirmations = true
	}

	if abortFlag {
		seq := &release.Sequencer{Root: env.Root, Config: env.Config, Out: cmd.OutOrStdout()}
		return seq.Abort()
	}

	if continueFlag && len(args) > 0 {
		return apperrors.NewArgumentErrorWithUsage(
			"--continue takes no bump argument",
			"cargo-release --continue",
		)
	}
	if !continueFlag && len(args) == 0 {
		return apperrors.NewArgumentErrorWithUsage(
			"missing bump argument",
			"cargo-release [patch|minor|major|current]",
			"Use --continue to resume a failed release.",
		)
	}

	seq, err := env.sequencer(dryRunFlag)
	if err != nil {
		return err
	}

	handler := notify.NewHandler(env.Config.Notifications)
	return lifecycle.RunCommand("release", handler, func() error {
		if continueFlag {
			return seq.Continue(cmd.Context())
		}
		kind, err := release.ParseBump(args[0])
		if err != nil {
			return apperrors.NewArgumentError(err.Error())
		}
		return seq.Release(cmd.Context(), kind)
	})
}

// ExecuteRelease runs the cargo-release command and returns the process
// exit code.
func ExecuteRelease() int {
	return ExitCode(report(releaseCmd.Execute()))
}
