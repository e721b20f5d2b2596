package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raine/rust-release-tools/internal/testutil"
)

func TestCLI_Commands(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRunner()
	cli := NewCLI("git", fake)
	ctx := context.Background()

	require.NoError(t, cli.Add(ctx, "/repo", "Cargo.toml", "CHANGELOG.md"))
	require.NoError(t, cli.Commit(ctx, "/repo", "release v1.0.0"))
	require.NoError(t, cli.TagAnnotated(ctx, "/repo", "v1.0.0", "release v1.0.0"))
	require.NoError(t, cli.Push(ctx, "/repo"))

	assert.Equal(t, []string{
		"git add -- Cargo.toml CHANGELOG.md",
		"git commit -m release v1.0.0",
		"git tag -a v1.0.0 -m release v1.0.0",
		"git push",
		"git push --tags",
	}, fake.CommandLines())

	for _, call := range fake.Calls {
		assert.Equal(t, "/repo", call.Dir)
	}
}

func TestCLI_CustomBinary(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRunner()
	cli := NewCLI("/opt/git/bin/git", fake)

	require.NoError(t, cli.Push(context.Background(), "/repo"))
	assert.True(t, fake.Ran("/opt/git/bin/git push"))
}

func TestCLI_PushStopsOnFirstFailure(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRunner().FailOn("git push", errors.New("remote rejected"))
	cli := NewCLI("git", fake)

	err := cli.Push(context.Background(), "/repo")
	require.Error(t, err)
	assert.Equal(t, []string{"git push"}, fake.CommandLines())
}
