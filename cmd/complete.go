package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/zenedit/internal/presentation"
)

var completeCmd = &cobra.Command{
	Use:   "complete <file>",
	Short: "Print completion candidates at a byte offset",
	Long: `Classify the token at --offset in file and print the candidates the
editor popup would show. With --commit the selected candidate is spliced in
and the change is printed as a patch (or written back with --write).`,
	Example: `  zenedit complete notes.zd --offset 42
  zenedit complete notes.zd --offset 42 --select 2 --commit --write
  zenedit complete - --offset 6 --json < notes.zd`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().Int("offset", -1, "cursor byte offset (default: end of text)")
	completeCmd.Flags().Int("select", 0, "candidate index to select")
	completeCmd.Flags().Bool("commit", false, "commit the selected candidate")
	completeCmd.Flags().Bool("json", false, "print JSON")
	completeCmd.Flags().Bool("write", false, "with --commit, write the result back to file")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	if err := applyConfig(); err != nil {
		return err
	}
	path := args[0]
	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	offset, _ := cmd.Flags().GetInt("offset")
	selected, _ := cmd.Flags().GetInt("select")
	commit, _ := cmd.Flags().GetBool("commit")
	asJSON, _ := cmd.Flags().GetBool("json")
	write, _ := cmd.Flags().GetBool("write")
	if offset < 0 {
		offset = len(text)
	}
	if write && (!commit || path == "-") {
		return fmt.Errorf("--write needs --commit and a file argument")
	}

	ctx := cmd.Context()
	env, err := newEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	update, err := env.engine.OnTextChanged(ctx, text, offset)
	if err != nil {
		return err
	}

	result := presentation.CompletionDTO{
		Kind:       update.Classification.Kind.String(),
		Start:      update.Classification.Start,
		Query:      update.Query,
		Selected:   -1,
		Candidates: []presentation.CandidateDTO{},
	}
	if s := update.Session; s.IsOpen() {
		result.InsertAt = s.InsertAt
		result.Candidates = presentation.FromCandidates("", s.Candidates)
		if cmd.Flags().Changed("select") && !env.engine.Select(selected) {
			return fmt.Errorf("--select %d out of range (%d candidates)", selected, len(s.Candidates))
		}
		result.Selected = env.engine.Session().Selected
	}

	if commit {
		committed, ok := env.engine.Commit(ctx)
		if !ok {
			return fmt.Errorf("nothing to complete at offset %d", offset)
		}
		result.Committed = true
		result.Cursor = committed.Cursor
		result.Patch = makePatch(text, committed.Text)
		if write {
			if err := os.WriteFile(path, []byte(committed.Text), 0o644); err != nil { //nolint:gosec // G306: user document
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	if asJSON {
		return formatter.FormatJSON(result)
	}
	return formatter.FormatCompletion(result)
}

// makePatch renders the change from before to after as a unified-style patch.
func makePatch(before, after string) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(before, after)
	return dmp.PatchToText(patches)
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's document
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
