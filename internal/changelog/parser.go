package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Release headings look like "## [v0.3.1] - 2026-02-14". The brackets and
// the date are optional so hand-written files still parse.
var headingRe = regexp.MustCompile(`^##\s+\[?(v?\d+\.\d+\.\d+)\]?(?:\s*-\s*(\d{4}-\d{2}-\d{2}))?\s*$`)

// Parse splits changelog markdown into a preamble and release sections.
// Content under a heading belongs to that section until the next release
// heading or end of input.
func Parse(content string) *Document {
	doc := &Document{}
	lines := strings.Split(content, "\n")

	var preamble []string
	var body []string
	var current *Entry

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimRight(strings.TrimLeft(strings.Join(body, "\n"), "\n"), " \t\n")
		doc.Entries = append(doc.Entries, *current)
		body = body[:0]
	}

	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Entry{Tag: m[1], Date: m[2]}
			continue
		}
		if current == nil {
			preamble = append(preamble, line)
		} else {
			body = append(body, line)
		}
	}
	flush()

	doc.Preamble = strings.TrimRight(strings.Join(preamble, "\n"), " \t\n")
	if doc.Preamble != "" {
		doc.Preamble += "\n"
	}
	return doc
}

// Render serializes the document back to markdown. Sections are separated
// by a single blank line and the file ends with a newline.
func (d *Document) Render() string {
	var b strings.Builder
	if d.Preamble != "" {
		b.WriteString(d.Preamble)
	}
	for _, e := range d.Entries {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if e.Date != "" {
			fmt.Fprintf(&b, "## [%s] - %s\n", e.Tag, e.Date)
		} else {
			fmt.Fprintf(&b, "## [%s]\n", e.Tag)
		}
		if e.Body != "" {
			b.WriteString("\n")
			b.WriteString(e.Body)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Load reads and parses the changelog at path. A missing file yields an
// empty document with the default preamble, so the first release creates
// the file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Preamble: DefaultPreamble}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Save writes the document atomically: render to a temp file in the same
// directory, then rename over the target.
func Save(path string, doc *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".changelog-*.md")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(doc.Render()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
