// Package progress provides a terminal spinner for long-running external
// calls (cargo publish, changelog generation). It degrades to plain status
// lines when stdout is not a terminal or NO_COLOR is set.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Capabilities describes what the attached terminal supports.
type Capabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// Detect inspects stdout and the environment to decide how progress should
// be rendered. CARGO_RELEASE_ASCII=1 forces the ASCII spinner set.
func Detect() Capabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return Capabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && os.Getenv("NO_COLOR") == "",
		SupportsUnicode: isTTY && os.Getenv("CARGO_RELEASE_ASCII") != "1",
	}
}

// Spinner shows an animated indicator while a blocking call runs.
// A nil or non-TTY spinner falls back to printing the message once.
type Spinner struct {
	caps Capabilities
	spin *spinner.Spinner
}

// New creates a Spinner matching the detected terminal capabilities.
func New(caps Capabilities) *Spinner {
	if !caps.IsTTY {
		return &Spinner{caps: caps}
	}

	// Set 14 is the braille spinner; set 9 the ASCII |/-\ fallback.
	set := spinner.CharSets[14]
	if !caps.SupportsUnicode {
		set = spinner.CharSets[9]
	}

	s := spinner.New(set, 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	return &Spinner{caps: caps, spin: s}
}

// Start begins animating with the given message.
func (s *Spinner) Start(message string) {
	if s == nil {
		return
	}
	if s.spin == nil {
		fmt.Fprintf(os.Stderr, "%s...\n", message)
		return
	}
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if s == nil || s.spin == nil {
		return
	}
	s.spin.Stop()
}
