package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `
name: calc
rules:
  - name: number
    regex: '\d+'
  - name: plus
    literal: "+"
  - name: space
    regex: '[ ]+'
    skip: true
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpec), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--telemetry", "none"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	spec := writeSpec(t)

	out, err := execute(t, "", "match", spec, "1 + 22")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0", "number", `"1"`}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2", "plus", `"+"`}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"4", "number", `"22"`}, strings.Fields(lines[2]))

	out, err = execute(t, "7+", "match", spec)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	out, err = execute(t, "", "match", spec, "1 x")
	assert.ErrorContains(t, err, "offset 2")
	assert.Contains(t, out, "number")
}

func TestTableCommand(t *testing.T) {
	out, err := execute(t, "", "table", writeSpec(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "STATE"))
	assert.Contains(t, out, "number")
	assert.Contains(t, out, "'0'-'9'")
	assert.Contains(t, out, "'+'")
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "", "table", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "", "--log-level", "loud", "version")
	assert.ErrorContains(t, err, "--log-level")

	_, err = execute(t, "", "--telemetry", "carrier-pigeon", "version")
	assert.Error(t, err)

	_, err = execute(t, "", "table")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "lexfa dev\n", out)
}
