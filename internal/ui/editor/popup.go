package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/ui/styles"
)

const (
	popupMaxWidth = 48
	iconMarker    = "◆"
	logoMarker    = "▣"
)

func (m Model) candidateZone(i int) string {
	return m.zones + "cand-" + strconv.Itoa(i)
}

// popupWindow returns the range of candidate rows to show so the selected
// row is visible.
func popupWindow(selected, total, height int) (start, end int) {
	if total <= height {
		return 0, total
	}
	start = max(selected-height+1, 0)
	return start, start + height
}

// renderPopup draws the candidate list no wider than maxWidth cells.
func (m Model) renderPopup(s *completion.Session, maxWidth int) string {
	start, end := popupWindow(s.Selected, len(s.Candidates), m.cfg.PopupHeight)

	// Border and item padding take four cells
	inner := min(popupMaxWidth, maxWidth-4)
	widest := 0
	for _, c := range s.Candidates[start:end] {
		widest = max(widest, lipgloss.Width(candidateText(c)))
	}
	inner = max(min(widest, inner), 1)

	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		c := s.Candidates[i]
		style := styles.PopupItemStyle
		if i == s.Selected {
			style = styles.PopupSelectedStyle
		}
		row := padding.String(truncate.StringWithTail(renderCandidate(c), uint(inner), "…"), uint(inner))
		rows = append(rows, zone.Mark(m.candidateZone(i), style.Render(row)))
	}
	if len(s.Candidates) > end-start {
		counter := fmt.Sprintf("%d/%d", s.Selected+1, len(s.Candidates))
		rows = append(rows, styles.PopupItemStyle.Render(
			padding.String(styles.PopupTitleStyle.Render(counter), uint(inner)),
		))
	}

	return styles.PopupStyle.Render(strings.Join(rows, "\n"))
}

// candidateText is the unstyled row, used for sizing.
func candidateText(c completion.Candidate) string {
	text := marker(c) + " " + c.Name
	if c.Title != "" {
		text += "  " + c.Title
	}
	return text
}

// renderCandidate shows the icon or logo marker, the bold name and the title.
func renderCandidate(c completion.Candidate) string {
	row := styles.PopupIconStyle.Render(marker(c)) + " " + styles.PopupNameStyle.Render(c.Name)
	if c.Title != "" {
		row += "  " + styles.PopupTitleStyle.Render(c.Title)
	}
	return row
}

func marker(c completion.Candidate) string {
	switch {
	case c.Icon != "":
		return iconMarker
	case c.LogoURL != "":
		return logoMarker
	default:
		return " "
	}
}
