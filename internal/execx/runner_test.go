package execx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name_ string
		args  []string
		want  string
	}{
		"no args":   {name_: "git", want: "git"},
		"with args": {name_: "git", args: []string{"push", "--tags"}, want: "git push --tags"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatCommand(tt.name_, tt.args))
		})
	}
}

func TestShellQuote(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":          {input: "hello", want: "'hello'"},
		"with spaces":    {input: "hello world", want: "'hello world'"},
		"single quote":   {input: "it's", want: `'it'\''s'`},
		"empty":          {input: "", want: "''"},
		"double quotes":  {input: `say "hi"`, want: `'say "hi"'`},
		"dollar ignored": {input: "$HOME", want: "'$HOME'"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ShellQuote(tt.input))
		})
	}
}

func TestExecRunner_Output(t *testing.T) {
	t.Parallel()

	out, err := ExecRunner{}.Output(context.Background(), t.TempDir(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecRunner_OutputError(t *testing.T) {
	t.Parallel()

	_, err := ExecRunner{}.Output(context.Background(), t.TempDir(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	assert.True(t, Available("sh"))
	assert.False(t, Available("definitely-not-a-real-binary-xyz"))
}

func TestVerbose_EchoesCommands(t *testing.T) {
	t.Parallel()

	var log bytes.Buffer
	runner := NewVerbose(ExecRunner{}, &log)

	out, err := runner.Output(context.Background(), t.TempDir(), "sh", "-c", "printf ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Contains(t, log.String(), "+ sh -c printf ok")
}
