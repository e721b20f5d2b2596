// Package changelog maintains a keep-a-changelog style CHANGELOG.md with
// one section per release tag, and generates missing section bodies with a
// CLI coding agent.
package changelog

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Entry is one release section of the changelog. Body holds the markdown
// between this section's heading and the next one, without surrounding
// blank lines.
type Entry struct {
	Tag  string
	Date string
	Body string
}

// Version parses the semver portion of the entry's tag. Returns nil for
// tags that are not semver.
func (e Entry) Version() *semver.Version {
	v, err := semver.NewVersion(strings.TrimPrefix(e.Tag, "v"))
	if err != nil {
		return nil
	}
	return v
}

// Document is a parsed changelog. Entries are kept in file order, which
// for a well-formed changelog means newest release first.
type Document struct {
	// Preamble is everything before the first release heading, typically
	// the "# Changelog" title and an intro paragraph.
	Preamble string
	Entries  []Entry
}

// DefaultPreamble seeds a changelog that does not exist yet.
const DefaultPreamble = "# Changelog\n\nAll notable changes to this project are documented in this file.\n"

// Has reports whether the document already contains a section for tag.
// Comparison ignores a leading "v" so "1.2.3" and "v1.2.3" match.
func (d *Document) Has(tag string) bool {
	want := strings.TrimPrefix(tag, "v")
	for _, e := range d.Entries {
		if strings.TrimPrefix(e.Tag, "v") == want {
			return true
		}
	}
	return false
}

// Insert places entry at the position matching release order: before the
// first existing entry whose version is lower. Entries with tags that do
// not parse as semver are left where they are. If no lower entry exists
// the new entry is appended.
func (d *Document) Insert(entry Entry) {
	v := entry.Version()
	if v != nil {
		for i, e := range d.Entries {
			ev := e.Version()
			if ev != nil && ev.LessThan(v) {
				d.Entries = append(d.Entries[:i], append([]Entry{entry}, d.Entries[i:]...)...)
				return
			}
		}
	}
	d.Entries = append(d.Entries, entry)
}
