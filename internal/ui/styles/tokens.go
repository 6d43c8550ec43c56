// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"

	// Markup highlighting
	TokenMarkupKey        ColorToken = "markup.key"
	TokenMarkupSymbol     ColorToken = "markup.symbol"
	TokenMarkupAnnotation ColorToken = "markup.annotation"
	TokenMarkupString     ColorToken = "markup.string"
	TokenMarkupLink       ColorToken = "markup.link"

	// Completion popup
	TokenPopupBackground ColorToken = "popup.bg"
	TokenPopupBorder     ColorToken = "popup.border"
	TokenPopupSelected   ColorToken = "popup.selected"
	TokenPopupTitle      ColorToken = "popup.title"
	TokenPopupIcon       ColorToken = "popup.icon"
)

// AllTokens returns every themeable color token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusError,

		TokenMarkupKey,
		TokenMarkupSymbol,
		TokenMarkupAnnotation,
		TokenMarkupString,
		TokenMarkupLink,

		TokenPopupBackground,
		TokenPopupBorder,
		TokenPopupSelected,
		TokenPopupTitle,
		TokenPopupIcon,
	}
}
