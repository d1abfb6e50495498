// Package config loads the optional repository-level markgate configuration.
//
// The configuration lives in a .markgate.json file at the repository root.
// The file is parsed as JSONC (JSON with comments and trailing commas),
// using github.com/tidwall/jsonc to strip the extensions before handing the
// bytes to the standard encoding/json — hook configuration files get edited
// by hand, and hand-edited JSON wants comments.
//
// An absent file is not an error: the gate runs with built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/mizuno-k/markgate/internal/condmark"
	"github.com/mizuno-k/markgate/internal/model"
)

// FileName is the configuration file name looked up at the repository root.
const FileName = ".markgate.json"

// Config holds the gate's tunable settings.
type Config struct {
	// Pattern is the substring that identifies conditional-mark files among
	// staged paths. Empty means condmark.DefaultPattern.
	Pattern string `json:"pattern,omitempty"`

	// Validator is the argv of an external validator command. When set, the
	// hook executes it with the matched paths appended as positional
	// arguments instead of running the built-in sort check. The command's
	// exit status is the commit decision: 0 allows, nonzero blocks.
	Validator []string `json:"validator,omitempty"`
}

// Default returns the configuration used when no .markgate.json exists:
// the standard conditional-mark pattern and the built-in validator.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration from <repoRoot>/.markgate.json.
//
// A missing file yields Default() with no error. A present but malformed
// file yields a CLIError with ExitConfigError — a broken config must not
// silently disable the gate.
func Load(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read %s", path), err)
	}

	// Strip comments and trailing commas, then parse with encoding/json.
	// Unknown fields are ignored, so the file can carry settings for
	// newer markgate versions without breaking older ones.
	cleanJSON := jsonc.ToJSON(data)

	var cfg Config
	if err := json.Unmarshal(cleanJSON, &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	return &cfg, nil
}

// EffectivePattern returns the configured pattern, falling back to
// condmark.DefaultPattern when unset.
func (c *Config) EffectivePattern() string {
	if c.Pattern == "" {
		return condmark.DefaultPattern
	}
	return c.Pattern
}

// HasExternalValidator reports whether an external validator command is
// configured.
func (c *Config) HasExternalValidator() bool {
	return len(c.Validator) > 0
}
