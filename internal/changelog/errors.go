package changelog

import "fmt"

// GenerationError marks a failure to produce the entry body for one tag.
// Earlier tags that were generated before the failure are already saved.
type GenerationError struct {
	Tag string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating changelog entry for %s: %v", e.Tag, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
