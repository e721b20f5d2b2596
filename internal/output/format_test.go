package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintStepHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintStepHeader(&buf, 3, 7, "Updating changelog")

	assert.Contains(t, buf.String(), "[3/7]")
	assert.Contains(t, buf.String(), "Updating changelog...")
}

func TestPrintStepSkipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintStepSkipped(&buf, "[2/7] Bumping version")

	assert.Contains(t, buf.String(), "[2/7] Bumping version (already done)")
}

func TestPrintPlanned(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintPlanned(&buf, []string{"Committing release", "Tagging release"})

	out := buf.String()
	assert.Contains(t, out, "Planned (skipped by --dry-run):")
	assert.Contains(t, out, "Committing release")
	assert.Contains(t, out, "Tagging release")
}

func TestPrintPlanned_EmptyIsSilent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintPlanned(&buf, nil)
	assert.Empty(t, buf.String())
}
