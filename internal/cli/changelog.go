package cli

import (
	"github.com/spf13/cobra"

	"github.com/raine/rust-release-tools/internal/build"
	"github.com/raine/rust-release-tools/internal/lifecycle"
	"github.com/raine/rust-release-tools/internal/notify"
)

var pendingFlag string

var changelogCmd = &cobra.Command{
	Use:   "update-changelog",
	Short: "Generate missing changelog entries from release tags",
	Long: `update-changelog compares the repository's release tags against
CHANGELOG.md and generates an entry for every tag that has none, using a
CLI coding agent. Entries are generated oldest first from the commit
subjects between consecutive tags, and each one is written to disk as
soon as it is ready.

With --pending, a single entry is generated for a release that has not
been tagged yet, covering every commit since the newest tag. Running it
again for the same version is a no-op.`,
	Example: `  update-changelog                    # fill in entries for all untagged releases
  update-changelog --pending v1.4.0   # draft the entry for the upcoming release`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       build.String(),
	RunE:          runUpdateChangelog,
}

func init() {
	changelogCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to project config file")
	changelogCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "Print executed commands")
	changelogCmd.Flags().StringVar(&pendingFlag, "pending", "", "Generate a single entry for an untagged release (e.g. v1.4.0)")
}

func runUpdateChangelog(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(configFlag)
	if err != nil {
		return err
	}

	gen, err := env.generator()
	if err != nil {
		return err
	}

	handler := notify.NewHandler(env.Config.Notifications)
	return lifecycle.RunCommand("update-changelog", handler, func() error {
		if pendingFlag != "" {
			return gen.Pending(cmd.Context(), pendingFlag)
		}
		_, err := gen.Sync(cmd.Context())
		return err
	})
}

// ExecuteChangelog runs the update-changelog command and returns the
// process exit code.
func ExecuteChangelog() int {
	return ExitCode(report(changelogCmd.Execute()))
}
