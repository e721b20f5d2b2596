package errors

import "fmt"

// Canned errors for conditions the release tools hit repeatedly.

// MissingTool creates a prerequisite error for an executable not on PATH.
func MissingTool(name, purpose string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("required tool %q not found on PATH", name),
		fmt.Sprintf("Install %s (%s) and make sure it is on your PATH", name, purpose),
	)
}

// NoPendingRelease creates the error for --continue without saved state.
func NoPendingRelease(statePath string) *CLIError {
	return NewArgumentErrorWithUsage(
		"no pending release to continue",
		"cargo-release {patch|minor|major|current}",
		"Start a release first; --continue only resumes one that failed partway",
		fmt.Sprintf("Release state would be at %s", statePath),
	)
}

// ReleaseInProgress creates the error for starting a release while state exists.
func ReleaseInProgress(version, statePath string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("a release of v%s is already in progress", version),
		"Run 'cargo-release --continue' to resume it",
		fmt.Sprintf("Or run 'cargo-release --abort' to discard %s", statePath),
	)
}

// TagAlreadyExists creates the error for a target tag already in the repository.
func TagAlreadyExists(name string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("tag %s already exists", name),
		fmt.Sprintf("Delete it with 'git tag -d %s' or pick a different bump", name),
	)
}

// NotOnReleaseBranch creates the error for releasing from the wrong branch.
func NotOnReleaseBranch(current, want string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("releases must be made from %s (currently on %q)", want, current),
		fmt.Sprintf("git checkout %s", want),
	)
}

// DirtyWorktree creates the error for a non-clean working tree.
func DirtyWorktree() *CLIError {
	return NewPrerequisiteError(
		"working tree must be clean before releasing",
		"Commit or stash your changes, then retry",
		"Run 'git status' to see what is pending",
	)
}
