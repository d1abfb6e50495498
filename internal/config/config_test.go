package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuno-k/markgate/internal/condmark"
	"github.com/mizuno-k/markgate/internal/model"
)

// writeConfig is a test helper that writes a .markgate.json into a temp
// directory and returns the directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

// TestLoad_Missing verifies that an absent config file yields the defaults
// without error.
func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Pattern)
	assert.Empty(t, cfg.Validator)
	assert.False(t, cfg.HasExternalValidator())
	assert.Equal(t, condmark.DefaultPattern, cfg.EffectivePattern())
}

// TestLoad verifies parsing of a plain JSON configuration.
func TestLoad(t *testing.T) {
	dir := writeConfig(t, `{
  "pattern": "skip_rules",
  "validator": ["python3", "scripts/sort_checker.py"]
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "skip_rules", cfg.Pattern)
	assert.Equal(t, "skip_rules", cfg.EffectivePattern())
	require.Len(t, cfg.Validator, 2)
	assert.Equal(t, "python3", cfg.Validator[0])
	assert.True(t, cfg.HasExternalValidator())
}

// TestLoad_JSONC verifies that comments and trailing commas are accepted —
// the whole point of running the file through the JSONC translator.
func TestLoad_JSONC(t *testing.T) {
	dir := writeConfig(t, `{
  // substring that marks a staged file as a conditional-mark file
  "pattern": "tests_mark_conditions",
  /* delegate to the historical python checker */
  "validator": [
    "python3",
    "scripts/sort_checker.py", // trailing comma below is fine too
  ],
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "tests_mark_conditions", cfg.Pattern)
	require.Len(t, cfg.Validator, 2)
}

// TestLoad_Malformed verifies that a present but unparseable config file
// is a CLIError with ExitConfigError — it must not silently degrade to
// defaults.
func TestLoad_Malformed(t *testing.T) {
	dir := writeConfig(t, `{"pattern": `)

	_, err := Load(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "error should be a *model.CLIError")
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestLoad_UnknownFields verifies that unrecognized settings are ignored,
// keeping old binaries compatible with newer config files.
func TestLoad_UnknownFields(t *testing.T) {
	dir := writeConfig(t, `{"pattern": "x", "future_setting": true}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Pattern)
}
