// Package release drives the crate release sequence: version bump,
// changelog generation, commit, tag, publish and push, with a checkpoint
// file so an interrupted release can be resumed.
package release

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// BumpKind selects how the next version is derived from the current one.
type BumpKind string

const (
	BumpPatch BumpKind = "patch"
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
	// BumpCurrent releases the version already in Cargo.toml without
	// changing it, for when the bump was made by hand.
	BumpCurrent BumpKind = "current"
)

// ParseBump validates a bump argument from the command line.
func ParseBump(s string) (BumpKind, error) {
	switch BumpKind(s) {
	case BumpPatch, BumpMinor, BumpMajor, BumpCurrent:
		return BumpKind(s), nil
	}
	return "", fmt.Errorf("invalid bump %q: must be patch, minor, major or current", s)
}

// NextVersion computes the release version from the manifest version.
// Pre-release and build metadata are dropped by the bump.
func NextVersion(current string, kind BumpKind) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", current, err)
	}
	switch kind {
	case BumpPatch:
		next := v.IncPatch()
		return next.String(), nil
	case BumpMinor:
		next := v.IncMinor()
		return next.String(), nil
	case BumpMajor:
		next := v.IncMajor()
		return next.String(), nil
	case BumpCurrent:
		return v.String(), nil
	}
	return "", fmt.Errorf("invalid bump %q", kind)
}
