package notify

import (
	"fmt"
	"time"
)

// Handler dispatches notifications according to configuration. A nil
// handler is safe to call and does nothing.
type Handler struct {
	config Config
	sender Sender
}

// NewHandler creates a handler with the platform sender.
func NewHandler(config Config) *Handler {
	return &Handler{config: config, sender: NewSender()}
}

// NewHandlerWithSender creates a handler with a custom sender, for tests.
func NewHandlerWithSender(config Config, sender Sender) *Handler {
	return &Handler{config: config, sender: sender}
}

// OnCommandComplete notifies about a finished command run. Failures to
// deliver are ignored; notifications are best effort.
func (h *Handler) OnCommandComplete(name string, success bool, duration time.Duration) {
	if h == nil || !h.enabled() {
		return
	}
	if success && !h.config.OnComplete {
		return
	}
	if !success && !h.config.OnError {
		return
	}

	n := Notification{
		Title:   name,
		Success: success,
	}
	if success {
		n.Message = fmt.Sprintf("Completed in %s", duration.Round(time.Second))
	} else {
		n.Message = fmt.Sprintf("Failed after %s", duration.Round(time.Second))
	}

	if h.config.Type == OutputVisual || h.config.Type == OutputBoth {
		_ = h.sender.SendVisual(n)
	}
	if h.config.Type == OutputSound || h.config.Type == OutputBoth {
		_ = h.sender.SendSound(h.config.SoundFile)
	}
}

// enabled applies the master switch plus CI and TTY guards.
func (h *Handler) enabled() bool {
	if !h.config.Enabled {
		return false
	}
	if isCI() {
		return false
	}
	return isInteractive()
}
