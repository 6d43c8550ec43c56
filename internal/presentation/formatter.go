// Package presentation formats command output for scripting.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// plainTable is a borderless table with a one-space column gap.
func plainTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().PaddingRight(1)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(_, _ int) lipgloss.Style { return cell }).
		Headers(headers...)
}

// FormatCandidates writes candidates as an aligned table.
func (f *Formatter) FormatCandidates(cands []CandidateDTO) error {
	t := plainTable("CATEGORY", "NAME", "TITLE", "ICON")
	for _, c := range cands {
		icon := c.Icon
		if icon == "" {
			icon = c.LogoURL
		}
		t.Row(c.Category, c.Name, c.Title, icon)
	}
	_, err := fmt.Fprintln(f.writer, t.String())
	return err
}

// FormatSpans writes highlight spans as an aligned table.
func (f *Formatter) FormatSpans(spans []SpanDTO) error {
	t := plainTable("START", "END", "CLASS", "TEXT")
	for _, s := range spans {
		t.Row(strconv.Itoa(s.Start), strconv.Itoa(s.End), s.Class, strconv.Quote(s.Text))
	}
	_, err := fmt.Fprintln(f.writer, t.String())
	return err
}

// FormatCompletion writes a completion result for humans: the committed
// patch, or the candidate list with the selection marked.
func (f *Formatter) FormatCompletion(r CompletionDTO) error {
	if r.Committed {
		_, err := fmt.Fprint(f.writer, r.Patch)
		return err
	}
	if len(r.Candidates) == 0 {
		_, err := fmt.Fprintf(f.writer, "%s: no candidates\n", r.Kind)
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "%s %q at %d\n", r.Kind, r.Query, r.InsertAt); err != nil {
		return err
	}
	t := plainTable()
	for i, c := range r.Candidates {
		marker := " "
		if i == r.Selected {
			marker = ">"
		}
		t.Row(marker+" "+c.Name, c.Title)
	}
	_, err := fmt.Fprintln(f.writer, t.String())
	return err
}
