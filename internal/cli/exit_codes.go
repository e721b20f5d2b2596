package cli

import "fmt"

// Exit codes for the release tools.
// These codes support scripting and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a step or generation failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or state
	ExitInvalidArguments = 3

	// ExitMissingDependency indicates a required tool is missing
	ExitMissingDependency = 4

	// ExitTimeout indicates the agent timed out
	ExitTimeout = 5
)

// ExitError carries an exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that maps to the given exit code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode resolves an error to a process exit code. Nil is success,
// an ExitError carries its own code, anything else is a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitFailure
}
