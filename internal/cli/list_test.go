package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_PrintsNameAndTestCount(t *testing.T) {
	dir := t.TempDir()
	writeSuiteFile(t, dir, "a.yaml", passingSuite)
	writeSuiteFile(t, dir, "b.yaml", failingSuite)

	out, err := execute(t, "list", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "passing suite (1 tests)")
	assert.Contains(t, out, "failing suite (2 tests)")
}

func TestList_CountsNestedTests(t *testing.T) {
	path := writeSuiteFile(t, t.TempDir(), "nested.yaml", `
name: nested
tests:
  - group: outer
    tests:
      - group: inner
        tests:
          - name: deep
            check: equal
            args:
              actual: 1
              expected: 1
      - name: mid
        check: equal
        args:
          actual: 1
          expected: 1
`)

	out, err := execute(t, "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "nested (2 tests)")
}

func TestList_JSON(t *testing.T) {
	path := writeSuiteFile(t, t.TempDir(), "a.yaml", passingSuite)

	out, err := execute(t, "list", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []SuiteInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, SuiteInfo{Name: "passing suite", Tests: 1}, resp.Data[0])
}

func TestList_EmptyDirectory(t *testing.T) {
	out, err := execute(t, "list", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No suites found.")
}

func TestList_MalformedSuiteIsCommandError(t *testing.T) {
	path := writeSuiteFile(t, t.TempDir(), "broken.yaml", "name: [")

	_, err := execute(t, "list", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
