// Package git provides repository access for the release tools. Read
// operations (branch, status, tags, commit history) use the go-git library;
// mutations (commit, tag, push) shell out to the git CLI through the
// execx.Runner seam so failures carry the tool's own exit status and tests
// can intercept them.
package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// open opens the repository containing dir, traversing up to find .git.
func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// CurrentBranch returns the short name of the checked-out branch, or an
// empty string in detached HEAD state.
func CurrentBranch(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// IsClean reports whether the working tree has no staged, unstaged, or
// untracked changes.
func IsClean(dir string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}
	return status.IsClean(), nil
}

// HasChanges is the negation of IsClean, used after a version bump to verify
// the bump actually touched something.
func HasChanges(dir string) (bool, error) {
	clean, err := IsClean(dir)
	if err != nil {
		return false, err
	}
	return !clean, nil
}

// TagExists reports whether a tag with the given name exists.
func TagExists(dir, name string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}

	_, err = repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up tag %s: %w", name, err)
	}
	return true, nil
}

// ListTags returns all tag names in the repository, unsorted.
func ListTags(dir string) ([]string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// ReleaseTags returns the repository's vX.Y.Z tags sorted newest first.
// Tags that do not parse as semantic versions are ignored.
func ReleaseTags(dir string) ([]string, error) {
	all, err := ListTags(dir)
	if err != nil {
		return nil, err
	}
	return SortReleaseTags(all), nil
}

// SortReleaseTags filters tags to semver release tags and sorts them newest
// first. Exposed separately so the changelog package can order parsed
// sections without a repository.
func SortReleaseTags(tags []string) []string {
	type tagged struct {
		name    string
		version *semver.Version
	}

	var parsed []tagged
	for _, t := range tags {
		v, err := semver.StrictNewVersion(strings.TrimPrefix(t, "v"))
		if err != nil {
			continue
		}
		parsed = append(parsed, tagged{name: t, version: v})
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].version.GreaterThan(parsed[j].version)
	})

	out := make([]string, len(parsed))
	for i, t := range parsed {
		out[i] = t.name
	}
	return out
}

// LastCommitSubject returns the subject line of the HEAD commit.
func LastCommitSubject(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("reading HEAD commit: %w", err)
	}
	return subjectOf(commit), nil
}

// CommitSubjectsBetween returns commit subjects in (from, to], newest first.
// Either bound may name a tag, branch, or any revision; an empty from walks
// back to the root, an empty to starts at HEAD.
func CommitSubjectsBetween(dir, from, to string) ([]string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	start, err := resolveCommit(repo, to)
	if err != nil {
		return nil, err
	}

	var stop plumbing.Hash
	if from != "" {
		fromCommit, err := resolveCommit(repo, from)
		if err != nil {
			return nil, err
		}
		stop = fromCommit.Hash
	}

	iter, err := repo.Log(&gogit.LogOptions{From: start.Hash})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", start.Hash, err)
	}

	var subjects []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == stop {
			return storer.ErrStop
		}
		subjects = append(subjects, subjectOf(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return subjects, nil
}

// TagDate returns the commit date of the tag's target, formatted YYYY-MM-DD.
func TagDate(dir, tag string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	commit, err := resolveCommit(repo, tag)
	if err != nil {
		return "", err
	}
	return commit.Committer.When.Format("2006-01-02"), nil
}

// resolveCommit resolves a revision to its commit, peeling annotated tags.
// An empty rev resolves to HEAD.
func resolveCommit(repo *gogit.Repository, rev string) (*object.Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	obj, err := repo.Object(plumbing.AnyObject, *hash)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", hash, err)
	}

	switch o := obj.(type) {
	case *object.Commit:
		return o, nil
	case *object.Tag:
		commit, err := o.Commit()
		if err != nil {
			return nil, fmt.Errorf("peeling tag %q: %w", rev, err)
		}
		return commit, nil
	default:
		return nil, fmt.Errorf("revision %q is not a commit", rev)
	}
}

func subjectOf(c *object.Commit) string {
	msg := c.Message
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
