package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raine/rust-release-tools/internal/config"
	apperrors "github.com/raine/rust-release-tools/internal/errors"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"),
		[]byte("[package]\nname = \"mycrate\"\nversion = \"0.1.0\"\n"), 0o644))
	chdirT(t, dir)

	var out bytes.Buffer
	initCmd.SetOut(&out)

	require.NoError(t, runInit(initCmd, nil))

	path := config.ProjectConfigPath(dir)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "release_branch")
	assert.Contains(t, out.String(), path)

	// A second run must not clobber the file.
	require.NoError(t, os.WriteFile(path, []byte("release_branch: custom\n"), 0o644))
	err = runInit(initCmd, nil)
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Argument, cliErr.Category)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "release_branch: custom\n", string(content))
}

func TestRunInit_OutsideCrate(t *testing.T) {
	chdirT(t, t.TempDir())

	err := runInit(initCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Cargo.toml")
}
