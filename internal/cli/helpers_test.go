package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mizuno-k/markgate/internal/config"
)

// setupGateRepo creates a temporary git repository with a baseline commit,
// ready for staging-area scenarios. The local user identity is configured
// so `git commit` works without global git config (e.g., in CI).
func setupGateRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0644))
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in dir and fails the test on nonzero exit.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// stageFile writes content to relPath inside the repository (creating
// parent directories) and stages it.
func stageFile(t *testing.T, repo, relPath, content string) {
	t.Helper()

	full := filepath.Join(repo, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	runTestGit(t, repo, "add", relPath)
}

// writeGateConfig writes a .markgate.json with the given validator argv
// into the repository root. The config file itself is kept out of the
// index so it never pollutes the staged set under test.
func writeGateConfig(t *testing.T, repo string, validator []string) {
	t.Helper()

	cfg := config.Config{Validator: validator}
	data, err := json.Marshal(&cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(repo, config.FileName), data, 0644))
}

// writeValidatorScript writes an executable shell script outside the
// repository and returns its absolute path.
func writeValidatorScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "validator.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// captureHookOut redirects the gate's stdout diagnostic stream into a
// buffer for the duration of the test.
func captureHookOut(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := hookOut
	hookOut = &buf
	t.Cleanup(func() { hookOut = prev })
	return &buf
}

// markPath is the conventional location of the conditional-mark file used
// across the gate tests.
const markPath = "tests/common/plugins/conditional_mark/tests_mark_conditions.yaml"
