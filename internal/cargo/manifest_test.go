package cargo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `[package]
name = "mycrate"
version = "0.1.0"  # bump with cargo-release
edition = "2021"

[dependencies]
serde = { version = "1.0", features = ["derive"] }

[dev-dependencies.insta]
version = "1.34"
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, sampleManifest)
	nested := filepath.Join(root, "src", "bin")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	tests := map[string]struct {
		start string
		want  string
	}{
		"from root":             {start: root, want: root},
		"from nested directory": {start: nested, want: root},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := FindRoot(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	t.Parallel()

	_, err := FindRoot(t.TempDir())
	assert.ErrorContains(t, err, "Cargo.toml not found")
}

func TestReadManifest(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, t.TempDir(), sampleManifest)

	m, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "mycrate", m.Name)
	assert.Equal(t, "0.1.0", m.Version)
	assert.Equal(t, path, m.Path)
}

func TestReadManifest_MissingFields(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no package table": "[dependencies]\nserde = \"1.0\"\n",
		"no version":       "[package]\nname = \"mycrate\"\n",
		"no name":          "[package]\nversion = \"0.1.0\"\n",
	}

	for name, content := range tests {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeManifest(t, t.TempDir(), content)
			_, err := ReadManifest(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteVersion(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, t.TempDir(), sampleManifest)

	changed, err := WriteVersion(path, "0.2.0")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The version line is rewritten in place, comment included.
	assert.Contains(t, string(data), `version = "0.2.0"  # bump with cargo-release`)
	// Dependency versions and later tables are untouched.
	assert.Contains(t, string(data), `serde = { version = "1.0", features = ["derive"] }`)
	assert.Contains(t, string(data), "version = \"1.34\"")

	m, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", m.Version)
}

func TestWriteVersion_AlreadyCurrent(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, t.TempDir(), sampleManifest)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := WriteVersion(path, "0.1.0")
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestWriteVersion_NoVersionField(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, t.TempDir(), "[package]\nname = \"mycrate\"\n")

	_, err := WriteVersion(path, "0.2.0")
	assert.ErrorContains(t, err, "no version field")
}
