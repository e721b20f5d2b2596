// Package output provides terminal output formatting for the release tools.
// It has minimal dependencies to stay importable from anywhere.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintStepHeader prints a step progress header, e.g. "[3/7] Changelog...".
func PrintStepHeader(out io.Writer, stepNum, totalSteps int, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", stepNum, totalSteps)), white(title+"..."))
}

// PrintStepSuccess prints a green checkmark line for a completed step.
func PrintStepSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintStepSkipped prints a dim line for a step skipped on resume.
func PrintStepSkipped(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("-"), dim(message+" (already done)"))
}

// PrintPlanned lists steps that a dry run would execute but did not.
func PrintPlanned(out io.Writer, titles []string) {
	if len(titles) == 0 {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", yellow("Planned (skipped by --dry-run):"))
	for _, t := range titles {
		fmt.Fprintf(out, "  %s %s\n", yellow("•"), t)
	}
}
