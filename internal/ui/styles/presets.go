// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"light":   LightPreset,
}

// DefaultPreset follows the original web editor palette: gold keys, blue
// symbols, purple annotations and links, green strings on a dark popup.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default zenedit theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#E5E7EB",
		TokenTextMuted:       "#6B7280",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",

		TokenMarkupKey:        "#FFD700",
		TokenMarkupSymbol:     "#6495ED",
		TokenMarkupAnnotation: "#B469E0",
		TokenMarkupString:     "#3CB371",
		TokenMarkupLink:       "#B469E0",

		TokenPopupBackground: "#1F2937",
		TokenPopupBorder:     "#DDDDDD",
		TokenPopupSelected:   "#8A2BE2",
		TokenPopupTitle:      "#9CA3AF",
		TokenPopupIcon:       "#FFD700",
	},
}

// LightPreset is tuned for light terminal backgrounds.
var LightPreset = Preset{
	Name:        "light",
	Description: "Light background theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#1F2937",
		TokenTextMuted:       "#9CA3AF",
		TokenTextPlaceholder: "#888888",

		TokenBorderDefault: "#BBBBBB",
		TokenBorderFocus:   "#1F2937",

		TokenStatusSuccess: "#15803D",
		TokenStatusError:   "#B91C1C",

		TokenMarkupKey:        "#B8860B",
		TokenMarkupSymbol:     "#1D4ED8",
		TokenMarkupAnnotation: "#7E22CE",
		TokenMarkupString:     "#15803D",
		TokenMarkupLink:       "#7E22CE",

		TokenPopupBackground: "#F3F4F6",
		TokenPopupBorder:     "#9CA3AF",
		TokenPopupSelected:   "#C4B5FD",
		TokenPopupTitle:      "#4B5563",
		TokenPopupIcon:       "#B8860B",
	},
}
