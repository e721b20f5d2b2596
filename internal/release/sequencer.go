package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raine/rust-release-tools/internal/cargo"
	"github.com/raine/rust-release-tools/internal/changelog"
	"github.com/raine/rust-release-tools/internal/config"
	"github.com/raine/rust-release-tools/internal/errors"
	"github.com/raine/rust-release-tools/internal/execx"
	"github.com/raine/rust-release-tools/internal/git"
	"github.com/raine/rust-release-tools/internal/output"
)

// Sequencer runs the release steps in order, checkpointing after each one.
type Sequencer struct {
	// Root is the crate root (the directory holding Cargo.toml).
	Root   string
	Config *config.Configuration

	Cargo     *cargo.CLI
	Git       *git.CLI
	Generator *changelog.Generator
	Runner    execx.Runner

	Out io.Writer

	// Confirm asks the user a yes/no question. Nil means always yes.
	Confirm func(prompt string) (bool, error)

	// DryRun limits execution to the steps that do not touch version
	// control or the registry, and persists no checkpoint.
	DryRun bool
}

type step struct {
	id    string
	title string
	// dryRun marks steps that still execute under --dry-run.
	dryRun bool
	run    func(ctx context.Context, s *State) error
}

func (r *Sequencer) steps() []step {
	return []step{
		{id: "check", title: "Checking preconditions", dryRun: true, run: r.stepCheck},
		{id: "bump", title: "Bumping version", dryRun: true, run: r.stepBump},
		{id: "changelog", title: "Updating changelog", dryRun: true, run: r.stepChangelog},
		{id: "commit", title: "Committing release", run: r.stepCommit},
		{id: "tag", title: "Tagging release", run: r.stepTag},
		{id: "publish", title: "Publishing to crates.io", run: r.stepPublish},
		{id: "push", title: "Pushing to remote", run: r.stepPush},
	}
}

// Release starts a new release attempt. It refuses to start while a
// checkpoint from a previous attempt exists.
func (r *Sequencer) Release(ctx context.Context, kind BumpKind) error {
	existing, err := LoadState(r.Config.StateDir)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.ReleaseInProgress(existing.TargetVersion, StatePath(r.Config.StateDir))
	}

	manifest, err := cargo.ReadManifest(filepath.Join(r.Root, cargo.ManifestName))
	if err != nil {
		return err
	}
	target, err := NextVersion(manifest.Version, kind)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "Releasing %s v%s (%s -> %s)\n\n", manifest.Name, target, manifest.Version, target)

	state := NewState(manifest.Name, target, kind)
	return r.run(ctx, state)
}

// Continue resumes the release recorded in the checkpoint file, skipping
// the steps that already completed.
func (r *Sequencer) Continue(ctx context.Context) error {
	state, err := LoadState(r.Config.StateDir)
	if err != nil {
		return err
	}
	if state == nil {
		return ErrNoPendingRelease
	}

	// Guard against resuming over unrelated work: once the release commit
	// exists it must still be at HEAD.
	if state.Done("commit") {
		subject, err := git.LastCommitSubject(r.Root)
		if err != nil {
			return err
		}
		if want := "release v" + state.TargetVersion; subject != want {
			return errors.NewRuntimeError(
				fmt.Sprintf("HEAD commit %q is not the release commit %q", subject, want),
				"New commits landed since the release attempt; abort it and start over",
			)
		}
	}

	fmt.Fprintf(r.Out, "Resuming release of %s v%s\n\n", state.Crate, state.TargetVersion)
	return r.run(ctx, state)
}

// Abort discards the checkpoint of an in-flight release. File changes
// made by completed steps are left for the user to revert.
func (r *Sequencer) Abort() error {
	state, err := LoadState(r.Config.StateDir)
	if err != nil {
		return err
	}
	if state == nil {
		return ErrNoPendingRelease
	}

	if err := ClearState(r.Config.StateDir); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Aborted release of %s v%s. Working tree changes were kept.\n", state.Crate, state.TargetVersion)
	return nil
}

func (r *Sequencer) run(ctx context.Context, state *State) error {
	steps := r.steps()

	var planned []string
	for i, st := range steps {
		if state.Done(st.id) {
			output.PrintStepSkipped(r.Out, fmt.Sprintf("[%d/%d] %s", i+1, len(steps), st.title))
			continue
		}
		if r.DryRun && !st.dryRun {
			planned = append(planned, st.title)
			continue
		}

		output.PrintStepHeader(r.Out, i+1, len(steps), st.title)
		if err := st.run(ctx, state); err != nil {
			// A checkpoint only makes sense once something happened;
			// a failure on the very first step leaves nothing to resume.
			if !r.DryRun && len(state.CompletedSteps) > 0 {
				if saveErr := SaveState(r.Config.StateDir, state); saveErr != nil {
					fmt.Fprintf(r.Out, "warning: saving release state: %v\n", saveErr)
				}
			}
			return &StepError{Step: st.id, Err: err}
		}

		state.MarkDone(st.id)
		if !r.DryRun {
			if err := SaveState(r.Config.StateDir, state); err != nil {
				return &StepError{Step: st.id, Err: err}
			}
		}
	}

	if r.DryRun {
		output.PrintPlanned(r.Out, planned)
		fmt.Fprintf(r.Out, "\nDry run: v%s prepared but not committed. Revert with git checkout if unwanted.\n", state.TargetVersion)
		return nil
	}

	if err := ClearState(r.Config.StateDir); err != nil {
		return err
	}
	output.PrintStepSuccess(r.Out, fmt.Sprintf("Released %s v%s", state.Crate, state.TargetVersion))
	return nil
}

// stepCheck verifies the release starts from the right branch, with a
// clean working tree and no pre-existing target tag.
func (r *Sequencer) stepCheck(ctx context.Context, s *State) error {
	branch, err := git.CurrentBranch(r.Root)
	if err != nil {
		return err
	}
	if branch != r.Config.ReleaseBranch {
		return errors.NotOnReleaseBranch(branch, r.Config.ReleaseBranch)
	}

	clean, err := git.IsClean(r.Root)
	if err != nil {
		return err
	}
	if !clean {
		return errors.DirtyWorktree()
	}

	exists, err := git.TagExists(r.Root, "v"+s.TargetVersion)
	if err != nil {
		return err
	}
	if exists {
		return errors.TagAlreadyExists("v" + s.TargetVersion)
	}
	return nil
}

// stepBump writes the target version to Cargo.toml and runs cargo check
// so Cargo.lock picks it up.
func (r *Sequencer) stepBump(ctx context.Context, s *State) error {
	manifestPath := filepath.Join(r.Root, cargo.ManifestName)
	changed, err := cargo.WriteVersion(manifestPath, s.TargetVersion)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(r.Out, "Cargo.toml already at %s\n", s.TargetVersion)
	}
	return r.Cargo.Check(ctx, r.Root)
}

// stepChangelog generates the entry for the upcoming tag, then makes sure
// the release changed anything at all. Releasing the current version with
// its changelog entry already in place would produce an empty commit.
func (r *Sequencer) stepChangelog(ctx context.Context, s *State) error {
	if err := r.Generator.Pending(ctx, "v"+s.TargetVersion); err != nil {
		return err
	}

	changed, err := git.HasChanges(r.Root)
	if err != nil {
		return err
	}
	if !changed {
		return errors.NewRuntimeError(
			fmt.Sprintf("release v%s produced no changes", s.TargetVersion),
			"The version and changelog entry are already in place; there is nothing to release",
		)
	}
	return nil
}

// stepCommit opens the changelog for review, asks for confirmation and
// commits the release files.
func (r *Sequencer) stepCommit(ctx context.Context, s *State) error {
	if !r.Config.SkipConfirmations {
		if err := r.reviewChangelog(ctx); err != nil {
			return err
		}
		if r.Confirm != nil {
			ok, err := r.Confirm(fmt.Sprintf("Proceed with release v%s? [y/N] ", s.TargetVersion))
			if err != nil {
				return err
			}
			if !ok {
				return ErrAborted
			}
		}
	}

	changed, err := git.HasChanges(r.Root)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(r.Out, "Nothing to commit, skipping")
		return nil
	}

	paths := []string{cargo.ManifestName, r.Config.ChangelogFile}
	if _, err := os.Stat(filepath.Join(r.Root, "Cargo.lock")); err == nil {
		paths = append(paths, "Cargo.lock")
	}
	if err := r.Git.Add(ctx, r.Root, paths...); err != nil {
		return err
	}
	return r.Git.Commit(ctx, r.Root, "release v"+s.TargetVersion)
}

// stepTag creates the annotated release tag. If the tag already exists,
// from a previous partially-completed attempt, the step is a no-op.
func (r *Sequencer) stepTag(ctx context.Context, s *State) error {
	name := "v" + s.TargetVersion
	exists, err := git.TagExists(r.Root, name)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(r.Out, "Tag %s already exists, skipping\n", name)
		return nil
	}
	return r.Git.TagAnnotated(ctx, r.Root, name, "release "+name)
}

func (r *Sequencer) stepPublish(ctx context.Context, _ *State) error {
	return r.Cargo.Publish(ctx, r.Root)
}

func (r *Sequencer) stepPush(ctx context.Context, _ *State) error {
	return r.Git.Push(ctx, r.Root)
}

// reviewChangelog opens the changelog in the configured editor and waits
// for it to exit.
func (r *Sequencer) reviewChangelog(ctx context.Context) error {
	editor := r.Config.EditorCommand()
	path := filepath.Join(r.Root, r.Config.ChangelogFile)
	cmdLine := strings.TrimSpace(editor + " " + execx.ShellQuote(path))
	if err := r.Runner.Run(ctx, r.Root, "sh", "-c", cmdLine); err != nil {
		return fmt.Errorf("editor %q: %w", editor, err)
	}
	return nil
}
