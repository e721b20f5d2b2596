// Package lifecycle wraps command execution with timing and notification
// dispatch. It is intentionally minimal: no event bus, no goroutines; each
// wrapper captures the start time, runs the function, and reports the result.
package lifecycle

import "time"

// NotificationHandler receives completion events. Defined here rather than
// importing notify so the dependency points outward; *notify.Handler
// satisfies it. Implementations must tolerate being nil-checked by callers.
type NotificationHandler interface {
	// OnCommandComplete is called when a command finishes.
	OnCommandComplete(name string, success bool, duration time.Duration)
}

// RunCommand executes fn, timing it and dispatching a completion event.
// The original error is returned unchanged.
func RunCommand(name string, handler NotificationHandler, fn func() error) error {
	start := time.Now()
	err := fn()
	if handler != nil {
		handler.OnCommandComplete(name, err == nil, time.Since(start))
	}
	return err
}
