package changelog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/testutil"
)

// scriptedAgent records prompts and answers each with generate(prompt).
type scriptedAgent struct {
	prompts  []string
	generate func(prompt string) (string, error)
}

func (a *scriptedAgent) Name() string    { return "scripted" }
func (a *scriptedAgent) Available() bool { return true }
func (a *scriptedAgent) Generate(_ context.Context, prompt string, _ cliagent.ExecOptions) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.generate != nil {
		return a.generate(prompt)
	}
	return "- Generated entry", nil
}

func newTestGenerator(t *testing.T, agent cliagent.Agent) (*Generator, *testutil.Repo) {
	t.Helper()

	dir := t.TempDir()
	repo := testutil.InitRepo(t, dir)
	gen := &Generator{
		Root:   dir,
		Path:   filepath.Join(dir, "CHANGELOG.md"),
		Agent:  agent,
		Runner: testutil.NewFakeRunner(),
		Out:    os.Stderr,
		Now:    func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) },
	}
	return gen, repo
}

func TestGenerator_Sync_GeneratesMissingEntries(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "v0.2.0") {
			return "- Added feature x", nil
		}
		return "- Initial release", nil
	}}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")
	repo.Tag(t, "v0.1.0")
	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\npub fn b() {}\n")
	repo.Commit(t, "add feature x")
	repo.Tag(t, "v0.2.0")

	added, err := gen.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	doc, err := Load(gen.Path)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "v0.2.0", doc.Entries[0].Tag)
	assert.Equal(t, "- Added feature x", doc.Entries[0].Body)
	assert.Equal(t, "v0.1.0", doc.Entries[1].Tag)
	assert.Equal(t, "- Initial release", doc.Entries[1].Body)

	// Entries are generated oldest first from the commits in range.
	require.Len(t, agent.prompts, 2)
	assert.Contains(t, agent.prompts[0], "v0.1.0")
	assert.Contains(t, agent.prompts[0], "- initial commit")
	assert.Contains(t, agent.prompts[1], "v0.2.0")
	assert.Contains(t, agent.prompts[1], "- add feature x")
	assert.NotContains(t, agent.prompts[1], "- initial commit")
}

func TestGenerator_Sync_UpToDateIsNoop(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")
	repo.Tag(t, "v0.1.0")

	added, err := gen.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// Second run finds nothing missing and never calls the agent.
	added, err = gen.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Len(t, agent.prompts, 1)
}

func TestGenerator_Sync_KeepsEarlierEntriesOnFailure(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "v0.2.0") {
			return "", errors.New("agent crashed")
		}
		return "- Initial release", nil
	}}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")
	repo.Tag(t, "v0.1.0")
	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\npub fn b() {}\n")
	repo.Commit(t, "add feature x")
	repo.Tag(t, "v0.2.0")

	added, err := gen.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, added)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "v0.2.0", genErr.Tag)

	// The v0.1.0 entry generated before the failure is on disk.
	doc, loadErr := Load(gen.Path)
	require.NoError(t, loadErr)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "v0.1.0", doc.Entries[0].Tag)
}

func TestGenerator_Pending(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{generate: func(string) (string, error) {
		return "- Upcoming work", nil
	}}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")
	repo.Tag(t, "v0.1.0")
	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\npub fn b() {}\n")
	repo.Commit(t, "add pending feature")

	require.NoError(t, gen.Pending(context.Background(), "v0.2.0"))

	doc, err := Load(gen.Path)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "v0.2.0", doc.Entries[0].Tag)
	assert.Equal(t, "2026-08-31", doc.Entries[0].Date)
	assert.Equal(t, "- Upcoming work", doc.Entries[0].Body)

	// Only the commits since the newest tag appear in the prompt.
	require.Len(t, agent.prompts, 1)
	assert.Contains(t, agent.prompts[0], "- add pending feature")
	assert.NotContains(t, agent.prompts[0], "- initial commit")
}

func TestGenerator_Pending_Idempotent(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")

	require.NoError(t, gen.Pending(context.Background(), "v0.1.0"))
	before, err := os.ReadFile(gen.Path)
	require.NoError(t, err)

	require.NoError(t, gen.Pending(context.Background(), "v0.1.0"))
	after, err := os.ReadFile(gen.Path)
	require.NoError(t, err)

	assert.Equal(t, string(before), string(after))
	assert.Len(t, agent.prompts, 1, "second call must not invoke the agent")
}

func TestGenerator_Pending_EmptyAgentOutput(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{generate: func(string) (string, error) { return "  \n ", nil }}
	gen, repo := newTestGenerator(t, agent)

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")

	err := gen.Pending(context.Background(), "v0.1.0")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "v0.1.0", genErr.Tag)
}

func TestGenerator_PrettierFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	agent := &scriptedAgent{}
	gen, repo := newTestGenerator(t, agent)
	fake := testutil.NewFakeRunner().FailOn("prettier", errors.New("not installed"))
	gen.Runner = fake
	gen.PrettierCmd = "prettier"

	repo.WriteFile(t, "src/lib.rs", "pub fn a() {}\n")
	repo.Commit(t, "initial commit")

	require.NoError(t, gen.Pending(context.Background(), "v0.1.0"))
	assert.True(t, fake.Ran(fmt.Sprintf("prettier --write %s", gen.Path)))
}

func TestSanitizeBody(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"plain body": {
			input: "- A change\n- Another",
			want:  "- A change\n- Another",
		},
		"surrounding whitespace trimmed": {
			input: "\n\n- A change\n\n",
			want:  "- A change",
		},
		"fenced body unwrapped": {
			input: "```markdown\n- A change\n```",
			want:  "- A change",
		},
		"fence without language": {
			input: "```\n### Added\n\n- A change\n```",
			want:  "### Added\n\n- A change",
		},
		"prose rejected": {
			input:   "Here is the changelog entry you asked for.",
			wantErr: true,
		},
		"empty output": {
			input:   "   ",
			wantErr: true,
		},
		"empty fence": {
			input:   "```\n```",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := sanitizeBody(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
