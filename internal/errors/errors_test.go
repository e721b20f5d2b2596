package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category Category
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: Category(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := Wrap(cause, Runtime, "try again")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Message)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewArgumentError("bad input")

	tests := map[string]struct {
		err      error
		wantHit  bool
	}{
		"direct":       {err: cliErr, wantHit: true},
		"wrapped":      {err: fmt.Errorf("context: %w", cliErr), wantHit: true},
		"plain error":  {err: errors.New("plain"), wantHit: false},
		"nil":          {err: nil, wantHit: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := AsCLIError(tt.err)
			if tt.wantHit {
				require.NotNil(t, got)
				assert.Equal(t, cliErr.Message, got.Message)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage(
		"no pending release to continue",
		"cargo-release {patch|minor|major|current}",
		"Start a release first",
	)

	out := Format(err)
	assert.Contains(t, out, "Argument Error")
	assert.Contains(t, out, "no pending release to continue")
	assert.Contains(t, out, "Usage: ")
	assert.Contains(t, out, "cargo-release {patch|minor|major|current}")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "Start a release first")
}

func TestFormat_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Format(nil))
}

func TestCannedErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory Category
		wantContains string
	}{
		"missing tool": {
			err:          MissingTool("claude", "generating changelog entries"),
			wantCategory: Prerequisite,
			wantContains: `"claude" not found`,
		},
		"no pending release": {
			err:          NoPendingRelease(".cargo-release/state.yml"),
			wantCategory: Argument,
			wantContains: "no pending release",
		},
		"release in progress": {
			err:          ReleaseInProgress("1.2.3", ".cargo-release/state.yml"),
			wantCategory: Runtime,
			wantContains: "v1.2.3 is already in progress",
		},
		"tag already exists": {
			err:          TagAlreadyExists("v1.2.3"),
			wantCategory: Prerequisite,
			wantContains: "tag v1.2.3 already exists",
		},
		"wrong branch": {
			err:          NotOnReleaseBranch("feature/x", "main"),
			wantCategory: Prerequisite,
			wantContains: "must be made from main",
		},
		"dirty worktree": {
			err:          DirtyWorktree(),
			wantCategory: Prerequisite,
			wantContains: "working tree must be clean",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.wantContains)
		})
	}
}
