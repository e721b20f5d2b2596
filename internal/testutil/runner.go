// Package testutil provides test doubles shared across packages, most
// importantly a recording fake for the execx.Runner seam.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Call records a single command invocation made through the FakeRunner.
type Call struct {
	Dir       string
	Name      string
	Args      []string
	Captured  bool // true for Output, false for Run
	Timestamp time.Time
}

// Line returns the invocation as a single command line.
func (c Call) Line() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeRunner implements execx.Runner, recording every call and replaying
// scripted results. Results are keyed by command-line prefix, so a script
// entry for "git push" matches both "git push" and "git push --tags" unless
// a longer prefix also matches (longest prefix wins).
type FakeRunner struct {
	Calls   []Call
	errs    map[string]error
	outputs map[string]string
}

// NewFakeRunner creates an empty FakeRunner; all commands succeed with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		errs:    make(map[string]error),
		outputs: make(map[string]string),
	}
}

// FailOn scripts an error for command lines starting with prefix.
func (f *FakeRunner) FailOn(prefix string, err error) *FakeRunner {
	f.errs[prefix] = err
	return f
}

// RespondTo scripts captured stdout for command lines starting with prefix.
func (f *FakeRunner) RespondTo(prefix string, output string) *FakeRunner {
	f.outputs[prefix] = output
	return f
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	call := f.record(dir, name, args, false)
	return f.scriptedErr(call)
}

// Output implements execx.Runner.
func (f *FakeRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	call := f.record(dir, name, args, true)
	if err := f.scriptedErr(call); err != nil {
		return "", err
	}
	if out, ok := longestPrefixMatch(f.outputs, call.Line()); ok {
		return out, nil
	}
	return "", nil
}

// CommandLines returns every recorded invocation as command lines, in order.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line()
	}
	return lines
}

// Ran reports whether any recorded command line starts with prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Line(), prefix) {
			return true
		}
	}
	return false
}

func (f *FakeRunner) record(dir, name string, args []string, captured bool) Call {
	call := Call{
		Dir:       dir,
		Name:      name,
		Args:      args,
		Captured:  captured,
		Timestamp: time.Now(),
	}
	f.Calls = append(f.Calls, call)
	return call
}

func (f *FakeRunner) scriptedErr(call Call) error {
	if err, ok := longestPrefixMatch(f.errs, call.Line()); ok {
		return fmt.Errorf("running %s: %w", call.Line(), err)
	}
	return nil
}

// longestPrefixMatch finds the value whose key is the longest prefix of line.
func longestPrefixMatch[V any](m map[string]V, line string) (V, bool) {
	var (
		best    string
		bestVal V
		found   bool
	)
	for prefix, val := range m {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
			bestVal = val
			found = true
		}
	}
	return bestVal, found
}
