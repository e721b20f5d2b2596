package release

import (
	"errors"
	"fmt"
)

// ErrNoPendingRelease is returned by Continue and Abort when no
// checkpoint file exists.
var ErrNoPendingRelease = errors.New("no release in progress")

// ErrAborted is returned when the user declines the pre-commit review.
var ErrAborted = errors.New("release aborted")

// StepError wraps a failure inside one release step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
