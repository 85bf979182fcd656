package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScript = `9
1 cat feline
1 car vehicle
4 ca 2
5
6 cat ca-t
6 car ca-r
4 c 2
4 cab 0
3 ca null
`

const failingScript = `3
1 cat feline
2 car
4 ca 2
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"dictctl"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEval_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_pass.txt"), []byte(passingScript), 0o644))

	code, stdout, _ := runCLI(t, "--log-level", "error", "eval", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "01_pass.txt")
	assert.Contains(t, stdout, "PASS")
}

func TestEval_FailureSetsExitCode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_pass.txt"), []byte(passingScript), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02_fail.txt"), []byte(failingScript), 0o644))

	code, stdout, stderr := runCLI(t, "--log-level", "error", "eval", "--format", "json", dir)
	assert.Equal(t, 1, code)

	var out struct {
		Passed int `json:"passed"`
		Total  int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), stderr)
	assert.Equal(t, 1, out.Passed)
	assert.Equal(t, 2, out.Total)
}

func TestEval_VerboseSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.txt")
	require.NoError(t, os.WriteFile(path, []byte(failingScript), 0o644))

	code, stdout, stderr := runCLI(t, "--log-level", "error", "eval", "--verbose", "--format", "markdown", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Operations[3]:{")
	assert.Contains(t, stdout, "| single.txt | FAIL |")
	assert.Contains(t, stderr, "Test failed at operation 2[Op:[countPrefix ca]]: expected 2 but got 1")
}

func TestEval_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "--log-level", "error", "eval")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "No testcase file provided")

	code, _, _ = runCLI(t, "--log-level", "error", "eval", "--format", "xml", t.TempDir())
	assert.Equal(t, 2, code)
}

func TestEval_InvalidConfig(t *testing.T) {
	code, _, stderr := runCLI(t, "--log-level", "shouting", "eval", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")
}
