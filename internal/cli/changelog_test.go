package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raine/rust-release-tools/internal/config"
	"github.com/raine/rust-release-tools/internal/testutil"
)

func TestRunUpdateChangelog_UpToDateRepo(t *testing.T) {
	dir := t.TempDir()
	repo := testutil.InitRepo(t, dir)
	repo.WriteFile(t, "Cargo.toml", "[package]\nname = \"mycrate\"\nversion = \"0.1.0\"\n")
	repo.Commit(t, "initial commit")

	// A custom agent whose binary exists but is never invoked: with no
	// release tags the sync is a no-op.
	cfgDir := filepath.Join(dir, config.ControlDirName)
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yml"),
		[]byte("custom_agent_cmd: \"true {{PROMPT}}\"\nprettier_cmd: \"\"\n"), 0o644))

	chdirT(t, dir)
	require.NoError(t, runUpdateChangelog(changelogCmd, nil))

	_, err := os.Stat(filepath.Join(dir, "CHANGELOG.md"))
	require.True(t, os.IsNotExist(err), "no-op sync must not create the changelog")
}
