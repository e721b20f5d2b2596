// Package cargo handles Cargo.toml inspection and the cargo CLI calls the
// release pipeline depends on.
package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the file that marks a crate root.
const ManifestName = "Cargo.toml"

// Manifest holds the package fields the release tools care about.
type Manifest struct {
	Name    string
	Version string
	// Path is the absolute path of the Cargo.toml the fields came from.
	Path string
}

// manifestTOML mirrors the [package] table for decoding.
type manifestTOML struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// FindRoot locates the crate root by looking for Cargo.toml in start or any
// of its parents, matching how cargo itself resolves the workspace.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in %s or any parent directory", ManifestName, start)
		}
		dir = parent
	}
}

// ReadManifest parses the package name and version out of a Cargo.toml.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m manifestTOML
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if m.Package.Name == "" || m.Package.Version == "" {
		return nil, fmt.Errorf("unable to extract package name/version from %s", path)
	}

	return &Manifest{
		Name:    m.Package.Name,
		Version: m.Package.Version,
		Path:    path,
	}, nil
}

// versionLine matches the first top-level version assignment. A targeted
// regex rewrite keeps the rest of the file byte-identical, which a decode
// and re-encode round trip would not.
var versionLine = regexp.MustCompile(`(?m)^(version\s*=\s*")([^"]+)(")`)

// WriteVersion rewrites the version field in a Cargo.toml. Returns false
// without touching the file when the version already matches (the "current"
// bump kind).
func WriteVersion(path, newVersion string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	// Only the first match is rewritten; later tables may carry their own
	// version assignments.
	loc := versionLine.FindSubmatchIndex(data)
	if loc == nil {
		return false, fmt.Errorf("no version field found in %s", path)
	}

	if string(data[loc[4]:loc[5]]) == newVersion {
		return false, nil
	}

	updated := make([]byte, 0, len(data)+len(newVersion))
	updated = append(updated, data[:loc[4]]...)
	updated = append(updated, newVersion...)
	updated = append(updated, data[loc[5]:]...)

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
