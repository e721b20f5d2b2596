package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/raine/rust-release-tools/internal/changelog"
	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/config"
	apperrors "github.com/raine/rust-release-tools/internal/errors"
	"github.com/raine/rust-release-tools/internal/release"
)

// report prints the command error and converts it into an ExitError
// carrying the process exit code. Nil stays nil.
func report(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, release.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return NewExitError(ExitFailure)
	}

	if errors.Is(err, release.ErrNoPendingRelease) {
		statePath := stateHint()
		apperrors.Print(apperrors.NoPendingRelease(statePath))
		return NewExitError(ExitInvalidArguments)
	}

	var timeout *cliagent.TimeoutError
	if errors.As(err, &timeout) {
		apperrors.PrintAny(timeout)
		return NewExitError(ExitTimeout)
	}

	var genErr *changelog.GenerationError
	if errors.As(err, &genErr) {
		apperrors.PrintAny(genErr)
		return NewExitError(ExitFailure)
	}

	var cliErr *apperrors.CLIError
	if errors.As(err, &cliErr) {
		apperrors.Print(cliErr)
		switch cliErr.Category {
		case apperrors.Argument, apperrors.Configuration:
			return NewExitError(ExitInvalidArguments)
		case apperrors.Prerequisite:
			return NewExitError(ExitMissingDependency)
		default:
			return NewExitError(ExitFailure)
		}
	}

	apperrors.PrintAny(err)
	return NewExitError(ExitFailure)
}

// stateHint resolves the checkpoint path for error messages, falling back
// to the default relative path when the environment cannot be loaded.
func stateHint() string {
	env, err := loadEnvironment(configFlag)
	if err != nil {
		return release.StatePath(config.ControlDirName)
	}
	return release.StatePath(env.Config.StateDir)
}
