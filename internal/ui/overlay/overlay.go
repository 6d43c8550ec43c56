// Package overlay draws floating content, such as the completion popup, on
// top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies how the overlay is placed.
type Position int

const (
	// Anchor places the overlay just below (X, Y), or just above Y when it
	// does not fit below. It is shifted left to stay inside Width.
	Anchor Position = iota
	// Center places the overlay in the middle of the view.
	Center
)

// Config controls overlay placement.
type Config struct {
	// Width and Height are the size of the background view.
	Width  int
	Height int
	// Position selects the placement rule.
	Position Position
	// X and Y are the anchor cell for Anchor placement, usually the caret.
	X int
	Y int
}

// Place renders fg on top of bg. Both may contain ANSI styling.
func Place(cfg Config, fg, bg string) string {
	x, y := Origin(cfg, lipgloss.Width(fg), lipgloss.Height(fg))
	return PlaceAt(x, y, cfg.Height, fg, bg)
}

// PlaceAt overwrites bg with fg starting at column x of line y. The
// background is padded to height lines; fg lines past the end are dropped.
func PlaceAt(x, y, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= len(bgLines) {
			break
		}

		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		var right string
		if end := x + ansi.StringWidth(fgLine); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + fgLine + right
	}

	return strings.Join(bgLines, "\n")
}

// Origin returns the top-left cell for an overlay of the given size.
func Origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Center:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	default:
		x = cfg.X
		if x+fgWidth > cfg.Width {
			x = cfg.Width - fgWidth
		}
		y = cfg.Y + 1
		if y+fgHeight > cfg.Height && cfg.Y-fgHeight >= 0 {
			y = cfg.Y - fgHeight
		}
	}

	return max(x, 0), max(y, 0)
}
