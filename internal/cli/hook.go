// Package cli — hook.go implements the "markgate hook" command.
//
// This is the commit gate itself: git runs it (through the installed
// pre-commit stub) immediately before finalizing a commit. The decision
// flow is:
//
//  1. List the staged file paths from the index.
//  2. Filter to paths containing the conditional-mark pattern.
//  3. Empty match set → allow the commit immediately (exit 0), without
//     invoking any validator.
//  4. Otherwise validate the matched files — with the external validator
//     from .markgate.json when configured, or the built-in sort check.
//  5. Validation failure → print the fixed diagnostic line to stdout and
//     block the commit (exit 1). Success → allow (exit 0).
//
// Unlike the other subcommands, hook never uses the richer exit code
// taxonomy: the pre-commit contract is binary, so every failure — git
// errors, config errors, a validator that could not even be started —
// maps to exit 1. The causes still differ in the stderr output.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mizuno-k/markgate/internal/condmark"
	"github.com/mizuno-k/markgate/internal/config"
	"github.com/mizuno-k/markgate/internal/gitindex"
	"github.com/mizuno-k/markgate/internal/model"
	"github.com/mizuno-k/markgate/internal/runner"
)

// unsortedDiagnostic is the fixed line printed to stdout when the gate
// blocks a commit. Scripts and muscle memory depend on this exact text,
// so it never varies with the failure details.
const unsortedDiagnostic = "Entries in the conditional mark YAML files are not sorted in alphabetic order"

// hookOut is where the diagnostic line is written. It is a variable (not
// os.Stdout inline) so tests can capture the gate's stdout contract.
var hookOut io.Writer = os.Stdout

// NewHookCommand creates the "hook" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewHookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Run the pre-commit gate against the staged files",
		Long: `Run the commit gate: inspect the staged files and, if any of them is a
conditional-mark YAML file, verify that its entries are sorted in alphabetic
order.

Exit code 0 allows the commit to proceed; exit code 1 blocks it. This command
is normally invoked by the installed .git/hooks/pre-commit stub, not by hand.

Examples:
  markgate hook
  markgate install   # wires this command into .git/hooks/pre-commit`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return gateError("failed to get current directory", err)
			}
			return runHook(cwd)
		},
	}
}

// runHook is the main logic function for the hook command, operating on the
// repository containing cwd.
//
// Any non-nil return is translated by Execute into a nonzero exit; gateError
// ensures the code is always 1, per the pre-commit contract.
func runHook(cwd string) error {
	ix := gitindex.NewIndex()

	// Step 1: resolve the repository root. Staged paths are reported
	// relative to it, and the validator runs with it as working directory.
	repoRoot, err := ix.RepoRoot(cwd)
	if err != nil {
		return gateError("not inside a git repository", err)
	}
	VerboseLog("Repository root: %s", repoRoot)

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return gateError("invalid gate configuration", err)
	}
	pattern := cfg.EffectivePattern()

	// Step 2: obtain the staged file list from the index.
	staged, err := ix.StagedFiles(repoRoot)
	if err != nil {
		return gateError("failed to list staged files", err)
	}
	VerboseLog("%d file(s) staged", len(staged))

	// Step 3: filter to the conditional-mark match set, preserving index
	// order. No match → fast path, the commit proceeds untouched.
	matched := condmark.FilterMatches(staged, pattern)
	if len(matched) == 0 {
		VerboseLog("No staged file matches %q, allowing commit", pattern)
		return nil
	}
	VerboseLog("%d staged file(s) match %q", len(matched), pattern)

	// Step 4: validate the matched files.
	if cfg.HasExternalValidator() {
		VerboseLog("Delegating to external validator: %v", cfg.Validator)
		if err := runner.NewRunner().Run(repoRoot, cfg.Validator, matched); err != nil {
			return blockCommit(err)
		}
		return nil
	}

	for _, path := range matched {
		report := condmark.CheckFile(filepath.Join(repoRoot, path))
		if report.Status == model.StatusOK {
			continue
		}
		// Unsorted entries and unreadable files block the commit alike —
		// a mark file the gate cannot parse must not slip through.
		if report.Err != "" {
			return blockCommit(model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("%s: %s", path, report.Err)))
		}
		for _, v := range report.Violations {
			VerboseLog("%s: %s", path, v)
		}
		return blockCommit(model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s has %d ordering violation(s)", path, len(report.Violations))))
	}

	// Step 5: all matched files passed — the commit proceeds.
	return nil
}

// blockCommit prints the fixed diagnostic line to stdout and returns the
// blocking error with its exit code forced to 1.
//
// The diagnostic goes to stdout (not stderr) because that is where the
// calling git process relays hook output from, and the line is the gate's
// primary user-visible signal. The underlying cause still reaches stderr
// through the root command's error printer.
func blockCommit(cause error) error {
	fmt.Fprintln(hookOut, unsortedDiagnostic)
	return gateError("commit blocked", cause)
}

// gateError wraps any failure into a CLIError with ExitGeneralError,
// collapsing the richer exit taxonomy into the hook's binary contract.
func gateError(message string, err error) error {
	return model.WrapCLIError(model.ExitGeneralError, message, err)
}
