package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/zenedit/internal/presentation"
	"github.com/zjrosen/zenedit/internal/preview"
	"github.com/zjrosen/zenedit/internal/zd"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Print a highlighted document",
	Long:  `Render file with zendoc highlighting for the terminal, as HTML, or as a span table.`,
	Example: `  zenedit highlight notes.zd
  zenedit highlight notes.zd --html > notes.html
  zenedit highlight - --spans < notes.zd`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().Bool("html", false, "render HTML")
	highlightCmd.Flags().Bool("spans", false, "print the highlight spans")
	highlightCmd.Flags().Bool("json", false, "with --spans, print JSON")
	highlightCmd.MarkFlagsMutuallyExclusive("html", "spans")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	if err := applyConfig(); err != nil {
		return err
	}
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	asHTML, _ := cmd.Flags().GetBool("html")
	spans, _ := cmd.Flags().GetBool("spans")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if spans {
		dtos := presentation.FromSpans(text, zd.Highlight(text))
		formatter := presentation.NewFormatter(out)
		if asJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatSpans(dtos)
	}

	rendered, err := preview.Local{HTML: asHTML}.Render(cmd.Context(), text)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)
	return nil
}
