// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#FFFFFF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FF8787"}

	// Markup highlighting
	MarkupKeyColor        = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"}
	MarkupSymbolColor     = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#6495ED"}
	MarkupAnnotationColor = lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#B469E0"}
	MarkupStringColor     = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#3CB371"}
	MarkupLinkColor       = lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#B469E0"}

	// Completion popup
	PopupBackgroundColor = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	PopupBorderColor     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#DDDDDD"}
	PopupSelectedColor   = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#8A2BE2"}
	PopupTitleColor      = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	PopupIconColor       = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"}

	PopupStyle         lipgloss.Style
	PopupItemStyle     lipgloss.Style
	PopupSelectedStyle lipgloss.Style
	PopupNameStyle     lipgloss.Style
	PopupTitleStyle    lipgloss.Style
	PopupIconStyle     lipgloss.Style

	PaneBorderStyle lipgloss.Style
	StatusBarStyle  lipgloss.Style
	ErrorTextStyle  lipgloss.Style
	SuccessStyle    lipgloss.Style
	MutedStyle      lipgloss.Style
)

func init() {
	rebuildStyles()
}
