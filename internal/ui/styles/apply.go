// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import zd, but zd can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both modes once a theme is applied explicitly
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:      &TextPrimaryColor,
		TokenTextMuted:        &TextMutedColor,
		TokenTextPlaceholder:  &TextPlaceholderColor,
		TokenBorderDefault:    &BorderDefaultColor,
		TokenBorderFocus:      &BorderFocusColor,
		TokenStatusSuccess:    &StatusSuccessColor,
		TokenStatusError:      &StatusErrorColor,
		TokenMarkupKey:        &MarkupKeyColor,
		TokenMarkupSymbol:     &MarkupSymbolColor,
		TokenMarkupAnnotation: &MarkupAnnotationColor,
		TokenMarkupString:     &MarkupStringColor,
		TokenMarkupLink:       &MarkupLinkColor,
		TokenPopupBackground:  &PopupBackgroundColor,
		TokenPopupBorder:      &PopupBorderColor,
		TokenPopupSelected:    &PopupSelectedColor,
		TokenPopupTitle:       &PopupTitleColor,
		TokenPopupIcon:        &PopupIconColor,
	}
	for token, target := range targets {
		if c, ok := colors[token]; ok {
			*target = makeColor(c)
		}
	}
}

// rebuildStyles recreates every Style from the current color variables.
func rebuildStyles() {
	PopupStyle = lipgloss.NewStyle().
		Background(PopupBackgroundColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PopupBorderColor)

	PopupItemStyle = lipgloss.NewStyle().
		Background(PopupBackgroundColor).
		Foreground(TextPrimaryColor).
		Padding(0, 1)

	PopupSelectedStyle = PopupItemStyle.
		Background(PopupSelectedColor)

	PopupNameStyle = lipgloss.NewStyle().Bold(true)
	PopupTitleStyle = lipgloss.NewStyle().Foreground(PopupTitleColor)
	PopupIconStyle = lipgloss.NewStyle().Foreground(PopupIconColor)

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderDefaultColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Padding(0, 1)

	ErrorTextStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Call registered rebuilders (e.g., zd.RebuildStyles)
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
