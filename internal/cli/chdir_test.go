package cli

import (
	"os"
	"testing"
)

// chdirT changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (added in Go 1.24), which is
// unavailable on the Go 1.21 toolchain.
func chdirT(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
