package zd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/zenedit/internal/ui/styles"
)

// Highlight styles per class.
// Uses centralized color constants from the styles package.
var (
	KeyStyle        lipgloss.Style
	SymbolStyle     lipgloss.Style
	AnnotationStyle lipgloss.Style
	StringStyle     lipgloss.Style
	LinkStyle       lipgloss.Style
)

func init() {
	RebuildStyles()
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// RebuildStyles recreates the highlight styles from the current theme colors.
func RebuildStyles() {
	// Tabs are kept as-is so rendered columns line up with buffer offsets
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)

	KeyStyle = base.Foreground(styles.MarkupKeyColor).Bold(true)
	SymbolStyle = base.Foreground(styles.MarkupSymbolColor).Bold(true)
	AnnotationStyle = base.Foreground(styles.MarkupAnnotationColor).Bold(true)
	StringStyle = base.Foreground(styles.MarkupStringColor)
	LinkStyle = base.Foreground(styles.MarkupLinkColor).Underline(true)
}

// classStyle returns the style for a highlight class.
func classStyle(c Class) (lipgloss.Style, bool) {
	switch c {
	case ClassKey:
		return KeyStyle, true
	case ClassSymbol:
		return SymbolStyle, true
	case ClassAnnotation:
		return AnnotationStyle, true
	case ClassString:
		return StringStyle, true
	case ClassLink:
		return LinkStyle, true
	default:
		return lipgloss.Style{}, false
	}
}

func styleSegment(seg Segment) string {
	style, ok := classStyle(seg.Class)
	if !ok {
		return seg.Text
	}
	return style.Render(seg.Text)
}
