package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with the given args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSuiteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const passingSuite = `
name: passing suite
tests:
  - name: one equals one
    check: equal
    args:
      actual: 1
      expected: 1
`

const failingSuite = `
name: failing suite
tests:
  - name: one equals two
    check: equal
    args:
      actual: 1
      expected: 2
  - name: one equals one
    check: equal
    args:
      actual: 1
      expected: 1
`

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "history")
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"verbose", "format", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	format := cmd.PersistentFlags().Lookup("format")
	assert.Equal(t, "text", format.DefValue)
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	path := writeSuiteFile(t, t.TempDir(), "s.yaml", passingSuite)

	_, err := execute(t, "run", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
