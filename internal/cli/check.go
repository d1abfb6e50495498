// Package cli — check.go implements the "markgate check" command.
//
// The check command runs the built-in sort validator directly, outside of
// any commit. With explicit file arguments it checks exactly those files;
// without arguments it checks every tracked file in the repository whose
// path matches the conditional-mark pattern, staged or not. This is the
// command CI pipelines run, and the one developers reach for after the
// hook has blocked a commit.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mizuno-k/markgate/internal/condmark"
	"github.com/mizuno-k/markgate/internal/config"
	"github.com/mizuno-k/markgate/internal/gitindex"
	"github.com/mizuno-k/markgate/internal/model"
)

// NewCheckCommand creates the "check" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Verify that conditional-mark files are alphabetically sorted",
		Long: `Check that the top-level entries of conditional-mark YAML files are sorted
in alphabetic order, and report every out-of-order or duplicate entry with
its line number.

With no arguments, all tracked files matching the conditional-mark pattern
are checked. With arguments, exactly the given files are checked, whether or
not they match the pattern.

Exit codes: 0 all files sorted, 2 unsorted entries found, other codes for
git/IO failures.

Examples:
  markgate check
  markgate check tests/common/plugins/conditional_mark/tests_mark_conditions.yaml
  markgate check --json`,

		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
			}
			return runCheck(cwd, args)
		},
	}
}

// runCheck is the main logic function for the check command.
func runCheck(cwd string, args []string) error {
	// Step 1: resolve the target file set.
	// Explicit arguments are used as-is (relative to the invocation
	// directory); otherwise the repository is scanned for pattern matches.
	var files []string
	base := cwd
	if len(args) > 0 {
		files = args
	} else {
		ix := gitindex.NewIndex()
		repoRoot, err := ix.RepoRoot(cwd)
		if err != nil {
			return err // runGit already returns CLIError with ExitGitError
		}
		base = repoRoot

		cfg, err := config.Load(repoRoot)
		if err != nil {
			return err
		}

		tracked, err := ix.LsFiles(repoRoot)
		if err != nil {
			return err
		}
		files = condmark.FilterMatches(tracked, cfg.EffectivePattern())
		VerboseLog("Checking %d tracked file(s) matching %q", len(files), cfg.EffectivePattern())
	}

	// Step 2: run the built-in check over every file.
	reports := make([]model.MarkFileReport, 0, len(files))
	for _, f := range files {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, f)
		}
		report := condmark.CheckFile(path)
		report.Path = f // report repository-relative paths, not absolute ones
		reports = append(reports, report)
	}

	// Step 3: print the reports.
	if IsJSONOutput() {
		printCheckJSON(reports)
	} else {
		printCheckText(reports)
	}

	// Step 4: derive the exit code. IO/parse failures dominate, then
	// ordering failures; a fully clean run exits 0.
	var unsorted, failed int
	for _, r := range reports {
		switch r.Status {
		case model.StatusUnsorted:
			unsorted++
		case model.StatusError:
			failed++
		}
	}
	if failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d file(s) could not be checked", failed))
	}
	if unsorted > 0 {
		return model.NewCLIError(model.ExitUnsortedEntries,
			fmt.Sprintf("%d file(s) have unsorted entries", unsorted))
	}
	return nil
}

// printCheckJSON outputs the check reports as a JSON array.
func printCheckJSON(reports []model.MarkFileReport) {
	data, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(data))
}

// printCheckText outputs the check reports as human-readable text:
// one status line per file, plus one indented line per violation.
func printCheckText(reports []model.MarkFileReport) {
	for _, r := range reports {
		switch r.Status {
		case model.StatusOK:
			fmt.Printf("%-8s %s\n", r.Status, r.Path)
		case model.StatusUnsorted:
			fmt.Printf("%-8s %s\n", r.Status, r.Path)
			for _, v := range r.Violations {
				fmt.Printf("         %s\n", v)
			}
		case model.StatusError:
			fmt.Printf("%-8s %s: %s\n", r.Status, r.Path, r.Err)
		}
	}
}
