package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/zenedit/internal/buffer"
	"github.com/zjrosen/zenedit/internal/ui/overlay"
	"github.com/zjrosen/zenedit/internal/ui/styles"
	"github.com/zjrosen/zenedit/internal/zd"
)

const (
	gutterWidth     = 5
	minPreviewWidth = 60
)

// ANSI codes for the cursor; only reverse video is toggled so surrounding
// highlight styles survive.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// View renders the editor.
func (m Model) View() string {
	bodyHeight := max(m.height-2, 1)
	editorWidth, previewWidth := m.paneWidths()

	body := m.renderText(editorWidth, bodyHeight)
	if previewWidth > 0 {
		sep := strings.TrimSuffix(strings.Repeat(styles.MutedStyle.Render("│")+"\n", bodyHeight), "\n")
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, sep, m.preview.View())
	}

	view := strings.Join([]string{m.renderHeader(), body, m.renderStatus()}, "\n")

	if m.showHelp {
		box := styles.PopupStyle.Padding(0, 1).Render(m.help.View(m.keys))
		view = overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, box, view)
	}
	return zone.Scan(view)
}

// paneWidths splits the width between the text and preview panes. The
// preview is hidden when switched off or when the terminal is too narrow.
func (m Model) paneWidths() (editorWidth, previewWidth int) {
	if !m.showPreview || m.scheduler == nil || m.width < minPreviewWidth {
		return m.width, 0
	}
	editorWidth = m.width / 2
	return editorWidth, m.width - editorWidth - 1
}

func (m *Model) resizePreview() {
	_, w := m.paneWidths()
	m.preview.Width = w
	m.preview.Height = max(m.height-2, 1)
}

// scrollToCursor keeps the cursor line inside the text pane.
func (m *Model) scrollToCursor() {
	height := max(m.height-2, 1)
	line := buffer.LineIndex(m.buf.Text, m.buf.Cursor)
	if line < m.top {
		m.top = line
	}
	if line >= m.top+height {
		m.top = line - height + 1
	}
}

func (m Model) renderHeader() string {
	name := "[scratch]"
	if m.cfg.Path != "" {
		name = filepath.Base(m.cfg.Path)
	}
	if m.dirty {
		name += " ●"
	}
	return ansi.Truncate(styles.StatusBarStyle.Bold(true).Render("zenedit  "+name), m.width, "…")
}

func (m Model) renderStatus() string {
	left := fmt.Sprintf("Ln %d, Col %d", m.buf.Line()+1, m.buf.Column()+1)
	if s := m.update.Session; s.IsOpen() {
		left += fmt.Sprintf("  %s %d/%d", s.Kind, s.Selected+1, len(s.Candidates))
	}
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorTextStyle
		}
		left += "  " + style.Render(m.status)
	}
	left = styles.StatusBarStyle.Render(left)

	right := styles.StatusBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderText draws the visible lines with a line-number gutter, the cursor
// and, when a session is open, the popup anchored at the token start.
func (m Model) renderText(width, height int) string {
	plain := strings.Split(m.buf.Text, "\n")
	styled := zd.RenderLines(m.buf.Text)
	cursorLine := buffer.LineIndex(m.buf.Text, m.buf.Cursor)
	lineStart, _ := buffer.LineBounds(m.buf.Text, m.buf.Cursor)

	lines := make([]string, 0, height)
	for i := m.top; i < m.top+height; i++ {
		if i >= len(plain) {
			lines = append(lines, styles.MutedStyle.Render("~"))
			continue
		}
		line := styled[i]
		if i == cursorLine {
			line = insertCursor(line, plain[i], m.buf.Cursor-lineStart)
		}
		gutter := styles.MutedStyle.Render(fmt.Sprintf("%*d ", gutterWidth-1, i+1))
		lines = append(lines, ansi.Truncate(gutter+line, width, ""))
	}
	text := padLines(lines, width)

	if s := m.update.Session; s.IsOpen() {
		popup := m.renderPopup(s, width)
		text = overlay.Place(overlay.Config{
			Width:  width,
			Height: height,
			X:      gutterWidth + buffer.Column(m.buf.Text, s.InsertAt),
			Y:      cursorLine - m.top,
		}, popup, text)
	}
	return zone.Mark(m.zones+"text", text)
}

// padLines right-pads every line to width cells.
func padLines(lines []string, width int) string {
	for i, l := range lines {
		if w := ansi.StringWidth(l); w < width {
			lines[i] = l + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

// insertCursor draws the cursor over the grapheme at byte offset col of the
// plain line, mapping the offset onto the styled line by skipping escape
// sequences.
func insertCursor(styled, plain string, col int) string {
	if col >= len(plain) {
		return styled + cursorOn + " " + cursorOff
	}
	cluster := plain[col:buffer.NextBoundary(plain, col)]

	var b strings.Builder
	i, seen := 0, 0
	for i < len(styled) && seen < col+len(cluster) {
		if styled[i] == '\x1b' {
			j := skipEscape(styled, i)
			b.WriteString(styled[i:j])
			i = j
			continue
		}
		if seen == col {
			b.WriteString(cursorOn)
		}
		b.WriteByte(styled[i])
		i++
		seen++
		if seen == col+len(cluster) {
			b.WriteString(cursorOff)
		}
	}
	b.WriteString(styled[i:])
	return b.String()
}

// skipEscape returns the index just past the CSI sequence starting at i.
func skipEscape(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '[' {
		j++
	}
	for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
		j++
	}
	if j < len(s) {
		j++
	}
	return j
}
