// Package cli — list.go implements the "markgate list" command.
//
// The list command shows the gate's current match set: the staged files
// whose paths contain the conditional-mark pattern, each annotated with its
// sort status. It answers "what would the hook look at right now?" without
// actually gating anything — list always exits 0 when the inspection itself
// succeeds, whatever the per-file statuses are.
//
// An optional --all flag widens the scan from the staging area to every
// tracked file in the repository.
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

// listFlags holds the flag values for the list command.
// These are bound to cobra flags in NewListCommand.
type listFlags struct {
	// all switches the scan from staged files to all tracked files.
	all bool
}

// NewListCommand creates the "list" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conditional-mark files in the staging area",
		Long: `List the staged files that match the conditional-mark pattern, together
with each file's sort status (ok, unsorted, or error).

Examples:
  markgate list
  markgate list --all
  markgate list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
			}
			return runList(cwd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false,
		"Scan all tracked files instead of the staging area")

	return cmd
}

// runList is the main logic function for the list command.
func runList(cwd string, flags *listFlags) error {
	ix := gitindex.NewIndex()

	repoRoot, err := ix.RepoRoot(cwd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return err
	}
	pattern := cfg.EffectivePattern()

	// Pick the candidate set: the staging area by default, the whole
	// tracked tree with --all.
	var candidates []string
	if flags.all {
		candidates, err = ix.LsFiles(repoRoot)
	} else {
		candidates, err = ix.StagedFiles(repoRoot)
	}
	if err != nil {
		return err
	}
	VerboseLog("%d candidate file(s), pattern %q", len(candidates), pattern)

	matched := condmark.FilterMatches(candidates, pattern)

	reports := make([]model.MarkFileReport, 0, len(matched))
	for _, f := range matched {
		report := condmark.CheckFile(filepath.Join(repoRoot, f))
		report.Path = f
		reports = append(reports, report)
	}

	if IsJSONOutput() {
		printListJSON(reports)
	} else {
		printListText(reports, flags.all)
	}
	return nil
}

// printListJSON outputs the match set as a JSON array. An empty match set
// produces an empty array, not null, so consumers can always range over it.
func printListJSON(reports []model.MarkFileReport) {
	if reports == nil {
		reports = []model.MarkFileReport{}
	}
	data, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(data))
}

// printListText outputs the match set as a simple two-column table.
func printListText(reports []model.MarkFileReport, all bool) {
	if len(reports) == 0 {
		if all {
			fmt.Println("No tracked conditional-mark files found.")
		} else {
			fmt.Println("No staged conditional-mark files.")
		}
		return
	}

	fmt.Printf("%-10s %s\n", "STATUS", "FILE")
	for _, r := range reports {
		fmt.Printf("%-10s %s\n", r.Status, r.Path)
	}
}
