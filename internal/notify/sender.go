package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Sender delivers notifications through platform facilities.
type Sender interface {
	// SendVisual shows a desktop notification.
	SendVisual(n Notification) error
	// SendSound plays an audible notification; empty soundFile uses the
	// platform default.
	SendSound(soundFile string) error
}

// NewSender creates a platform-specific sender for darwin or linux.
// Other platforms get a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return darwinSender{}
	case "linux":
		return linuxSender{}
	default:
		return noopSender{}
	}
}

type darwinSender struct{}

func (darwinSender) SendVisual(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Message, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}

func (darwinSender) SendSound(soundFile string) error {
	if soundFile == "" {
		soundFile = "/System/Library/Sounds/Glass.aiff"
	}
	return exec.Command("afplay", soundFile).Run()
}

type linuxSender struct{}

func (linuxSender) SendVisual(n Notification) error {
	urgency := "normal"
	if !n.Success {
		urgency = "critical"
	}
	return exec.Command("notify-send", "--urgency", urgency, n.Title, n.Message).Run()
}

func (linuxSender) SendSound(soundFile string) error {
	if soundFile == "" {
		soundFile = "/usr/share/sounds/freedesktop/stereo/complete.oga"
	}
	return exec.Command("paplay", soundFile).Run()
}

type noopSender struct{}

func (noopSender) SendVisual(Notification) error { return nil }
func (noopSender) SendSound(string) error        { return nil }
