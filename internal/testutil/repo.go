package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a throwaway git repository for tests, built with go-git so no
// git binary is needed.
type Repo struct {
	Dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree

	clock time.Time
}

// InitRepo creates a repository in dir with "main" checked out.
func InitRepo(t *testing.T, dir string) *Repo {
	t.Helper()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	if err != nil {
		t.Fatalf("initializing repository: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}

	return &Repo{
		Dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WriteFile writes a file relative to the repository root.
func (r *Repo) WriteFile(t *testing.T, name, content string) {
	t.Helper()

	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// Commit stages everything and commits. Commits are one minute apart so
// history order is deterministic.
func (r *Repo) Commit(t *testing.T, message string) plumbing.Hash {
	t.Helper()

	if err := r.wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		t.Fatalf("staging changes: %v", err)
	}

	r.clock = r.clock.Add(time.Minute)
	hash, err := r.wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: r.clock},
	})
	if err != nil {
		t.Fatalf("committing %q: %v", message, err)
	}
	return hash
}

// Tag creates an annotated tag on HEAD.
func (r *Repo) Tag(t *testing.T, name string) {
	t.Helper()

	head, err := r.repo.Head()
	if err != nil {
		t.Fatalf("getting HEAD: %v", err)
	}
	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "test", Email: "test@example.com", When: r.clock},
		Message: "release " + name,
	})
	if err != nil {
		t.Fatalf("creating tag %s: %v", name, err)
	}
}

// LightweightTag creates a plain tag reference on HEAD.
func (r *Repo) LightweightTag(t *testing.T, name string) {
	t.Helper()

	head, err := r.repo.Head()
	if err != nil {
		t.Fatalf("getting HEAD: %v", err)
	}
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	if err != nil {
		t.Fatalf("creating tag %s: %v", name, err)
	}
}
