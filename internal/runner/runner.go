// Package runner executes an external validator process on behalf of the
// commit gate.
//
// The validator contract is positional: the configured argv is extended
// with the matched file paths and executed with the repository root as the
// working directory. Exit status 0 means every file passed; any nonzero
// status blocks the commit. The validator's own output is captured and
// surfaced only on failure, so a passing hook stays silent.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mizuno-k/markgate/internal/model"
)

// Runner invokes external validator commands.
//
// It is stateless; the struct exists as a receiver so a custom environment
// or timeout policy can be added later without changing callers.
type Runner struct{}

// NewRunner creates a new Runner instance.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes argv with files appended as positional arguments, in dir.
//
// Return value semantics:
//   - nil: the validator exited 0, the files passed.
//   - CLIError with ExitValidatorError: the validator exited nonzero, or
//     could not be started at all. The two cases carry different messages
//     (a missing validator binary is a repository setup problem, not an
//     ordering problem) but both block the commit.
func (r *Runner) Run(dir string, argv []string, files []string) error {
	if len(argv) == 0 {
		return model.NewCLIError(model.ExitValidatorError, "external validator command is empty")
	}

	args := append(append([]string{}, argv[1:]...), files...)

	// #nosec G204 — argv comes from the repository's own configuration file
	cmd := exec.Command(argv[0], args...)
	cmd.Dir = dir

	// Stdout and stderr go into one buffer: validator diagnostics are only
	// ever shown as a single failure blob, so interleaving is fine.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		message := fmt.Sprintf("validator %q exited with status %d", strings.Join(argv, " "), exitErr.ExitCode())
		if out := strings.TrimSpace(buf.String()); out != "" {
			message = fmt.Sprintf("%s:\n%s", message, out)
		}
		return model.WrapCLIError(model.ExitValidatorError, message, err)
	}

	// The process never started (binary missing, permission denied).
	// Distinct message, same commit decision.
	return model.WrapCLIError(model.ExitValidatorError,
		fmt.Sprintf("validator %q could not be started", strings.Join(argv, " ")), err)
}
