package changelog

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/raine/rust-release-tools/internal/cliagent"
	"github.com/raine/rust-release-tools/internal/execx"
	"github.com/raine/rust-release-tools/internal/git"
	"github.com/raine/rust-release-tools/internal/progress"
)

// Generator synchronizes the changelog with the repository's release tags,
// asking a CLI agent to write the body for each missing section.
type Generator struct {
	// Root is the repository root the tags and commits are read from.
	Root string
	// Path is the absolute path of the changelog file.
	Path string

	Agent  cliagent.Agent
	Runner execx.Runner

	// PrettierCmd formats the file after writing. Empty disables formatting.
	PrettierCmd string
	// Timeout bounds each agent invocation. Zero means no limit.
	Timeout time.Duration

	Out     io.Writer
	Spinner *progress.Spinner

	// Now supplies the date for pending entries. Defaults to time.Now.
	Now func() time.Time
}

// Sync generates entries for every release tag missing from the changelog,
// oldest first, and returns how many were added. Each entry is saved as
// soon as it is generated; a failure mid-run keeps the completed entries.
func (g *Generator) Sync(ctx context.Context) (int, error) {
	tags, err := git.ReleaseTags(g.Root)
	if err != nil {
		return 0, err
	}

	doc, err := Load(g.Path)
	if err != nil {
		return 0, err
	}

	var missing []string
	for _, tag := range tags {
		if !doc.Has(tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		fmt.Fprintf(g.Out, "%s is up to date\n", filepath.Base(g.Path))
		return 0, nil
	}

	// Oldest first so each prompt covers the commits since the previous tag.
	for i := len(missing) - 1; i >= 0; i-- {
		tag := missing[i]
		prev := previousTag(tags, tag)

		date, err := git.TagDate(g.Root, tag)
		if err != nil {
			return len(missing) - 1 - i, &GenerationError{Tag: tag, Err: err}
		}

		entry, err := g.generate(ctx, tag, prev, tag, date)
		if err != nil {
			return len(missing) - 1 - i, err
		}

		doc.Insert(entry)
		if err := Save(g.Path, doc); err != nil {
			return len(missing) - 1 - i, err
		}
		fmt.Fprintf(g.Out, "Added changelog entry for %s\n", tag)
	}

	g.format(ctx)
	return len(missing), nil
}

// Pending writes a single entry for tag covering every commit since the
// newest existing release tag, dated today. Used before the release tag
// exists. Calling it again for the same tag is a no-op.
func (g *Generator) Pending(ctx context.Context, tag string) error {
	doc, err := Load(g.Path)
	if err != nil {
		return err
	}
	if doc.Has(tag) {
		fmt.Fprintf(g.Out, "Changelog entry for %s already exists\n", tag)
		return nil
	}

	tags, err := git.ReleaseTags(g.Root)
	if err != nil {
		return err
	}
	var prev string
	if len(tags) > 0 {
		prev = tags[0]
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	entry, err := g.generate(ctx, tag, prev, "HEAD", now().Format("2006-01-02"))
	if err != nil {
		return err
	}

	doc.Insert(entry)
	if err := Save(g.Path, doc); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Added changelog entry for %s\n", tag)

	g.format(ctx)
	return nil
}

// generate collects the commit subjects in (from, to] and runs the agent.
func (g *Generator) generate(ctx context.Context, tag, from, to, date string) (Entry, error) {
	subjects, err := git.CommitSubjectsBetween(g.Root, from, to)
	if err != nil {
		return Entry{}, &GenerationError{Tag: tag, Err: err}
	}
	if len(subjects) == 0 {
		return Entry{}, &GenerationError{Tag: tag, Err: fmt.Errorf("no commits found for %s", tag)}
	}

	prompt := buildPrompt(tag, subjects)

	g.Spinner.Start(fmt.Sprintf("Generating changelog entry for %s", tag))
	raw, err := g.Agent.Generate(ctx, prompt, cliagent.ExecOptions{Timeout: g.Timeout, Dir: g.Root})
	g.Spinner.Stop()
	if err != nil {
		return Entry{}, &GenerationError{Tag: tag, Err: err}
	}

	body, err := sanitizeBody(raw)
	if err != nil {
		return Entry{}, &GenerationError{Tag: tag, Err: err}
	}
	return Entry{Tag: tag, Date: date, Body: body}, nil
}

// format runs the configured formatter over the changelog. Failures are
// reported but never fail the run; the content is already on disk.
func (g *Generator) format(ctx context.Context) {
	if g.PrettierCmd == "" {
		return
	}
	if _, err := g.Runner.Output(ctx, g.Root, g.PrettierCmd, "--write", g.Path); err != nil {
		fmt.Fprintf(g.Out, "warning: %s failed on %s: %v\n", g.PrettierCmd, filepath.Base(g.Path), err)
	}
}

func previousTag(tags []string, tag string) string {
	for i, t := range tags {
		if t == tag && i+1 < len(tags) {
			return tags[i+1]
		}
	}
	return ""
}

func buildPrompt(tag string, subjects []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the changelog section body for release %s based on these commit subjects:\n\n", tag)
	for _, s := range subjects {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString(`
Instructions:
- Output markdown only, no surrounding prose and no code fences.
- Group changes under "### Added", "### Changed" and "### Fixed" headings as applicable; omit empty groups.
- One bullet per user-visible change, written for users of the crate.
- Fold internal refactors and chores into a single bullet or omit them.
- Do not include the release heading itself; it is added separately.`)
	return b.String()
}

// sanitizeBody strips a wrapping code fence if the agent added one despite
// instructions, and rejects output that does not look like a section body.
func sanitizeBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "```") {
		lines := strings.Split(body, "\n")
		if len(lines) >= 2 && strings.HasPrefix(lines[len(lines)-1], "```") {
			body = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		}
	}
	if body == "" {
		return "", fmt.Errorf("agent returned empty output")
	}
	// A body starts with a category heading or a bullet, not prose.
	if c := body[0]; c != '#' && c != '-' && c != '*' {
		first := strings.SplitN(body, "\n", 2)[0]
		return "", fmt.Errorf("agent output does not look like a changelog body: %q", first)
	}
	return body, nil
}
