package release

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// StateFileName is the checkpoint file inside the state directory.
const StateFileName = "state.yml"

// State is the checkpoint for an in-flight release. It is written after
// every completed step so a failed release can be resumed with --continue.
type State struct {
	// ID uniquely identifies this release attempt (timestamp_uuid format).
	ID string `yaml:"id"`
	// Crate is the package name from Cargo.toml.
	Crate string `yaml:"crate"`
	// TargetVersion is the version being released.
	TargetVersion string `yaml:"target_version"`
	// Bump records how the target version was derived.
	Bump BumpKind `yaml:"bump"`
	// StartedAt is when the release attempt began.
	StartedAt time.Time `yaml:"started_at"`
	// CompletedSteps lists step IDs that finished, in execution order.
	CompletedSteps []string `yaml:"completed_steps"`
}

// NewState creates the checkpoint for a fresh release attempt.
func NewState(crate, targetVersion string, bump BumpKind) *State {
	timestamp := time.Now().Format("20060102_150405")
	return &State{
		ID:            fmt.Sprintf("%s_%s", timestamp, uuid.New().String()[:8]),
		Crate:         crate,
		TargetVersion: targetVersion,
		Bump:          bump,
		StartedAt:     time.Now(),
	}
}

// Done reports whether the step was already completed in this attempt.
func (s *State) Done(stepID string) bool {
	for _, id := range s.CompletedSteps {
		if id == stepID {
			return true
		}
	}
	return false
}

// MarkDone records a completed step. Idempotent.
func (s *State) MarkDone(stepID string) {
	if !s.Done(stepID) {
		s.CompletedSteps = append(s.CompletedSteps, stepID)
	}
}

// StatePath returns the checkpoint file path for a state directory.
func StatePath(stateDir string) string {
	return filepath.Join(stateDir, StateFileName)
}

// SaveState writes the checkpoint atomically (temp file + rename).
func SaveState(stateDir string, state *State) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	statePath := StatePath(stateDir)
	tmpPath := statePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, statePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp state file: %w", err)
	}
	return nil
}

// LoadState reads the checkpoint. Returns nil and no error if no release
// is in flight.
func LoadState(stateDir string) (*State, error) {
	data, err := os.ReadFile(StatePath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	return &state, nil
}

// ClearState removes the checkpoint after a finished or aborted release.
func ClearState(stateDir string) error {
	if err := os.Remove(StatePath(stateDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}
