package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_Default(t *testing.T) {
	err := ApplyTheme(ThemeConfig{})
	require.NoError(t, err)
	require.Equal(t, DefaultPreset.Colors[TokenMarkupKey], MarkupKeyColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenPopupSelected], PopupSelectedColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	Presets["test"] = Preset{
		Name:        "test",
		Description: "Test preset",
		Colors: map[ColorToken]string{
			TokenMarkupSymbol: "#FF0000",
		},
	}
	defer delete(Presets, "test")

	err := ApplyTheme(ThemeConfig{Preset: "test"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", MarkupSymbolColor.Dark)
	// Tokens absent from the preset fall back to the default preset
	require.Equal(t, DefaultPreset.Colors[TokenMarkupKey], MarkupKeyColor.Dark)
}

func TestApplyTheme_LightPreset(t *testing.T) {
	defer func() { _ = ApplyTheme(ThemeConfig{}) }()

	err := ApplyTheme(ThemeConfig{Preset: "light"})
	require.NoError(t, err)
	require.Equal(t, LightPreset.Colors[TokenMarkupString], MarkupStringColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	Presets["test2"] = Preset{
		Name:        "test2",
		Description: "Test preset 2",
		Colors: map[ColorToken]string{
			TokenMarkupKey:    "#FF0000",
			TokenMarkupString: "#0000FF",
		},
	}
	defer delete(Presets, "test2")

	err := ApplyTheme(ThemeConfig{
		Preset: "test2",
		Colors: map[string]string{
			"markup.key": "#00FF00",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", MarkupKeyColor.Dark)    // Overridden
	require.Equal(t, "#0000FF", MarkupStringColor.Dark) // From preset
}

func TestApplyTheme_InvalidPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Preset: "nonexistent"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyTheme_InvalidToken(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"invalid.token": "#FF0000",
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")
}

func TestApplyTheme_InvalidHexColor(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"markup.key": "gold",
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid hex color")
}

func TestApplyTheme_RunsRebuilders(t *testing.T) {
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	defer func() { styleRebuilders = styleRebuilders[:len(styleRebuilders)-1] }()

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens() {
			_, ok := preset.Colors[token]
			require.True(t, ok, "preset %s is missing token %s", name, token)
		}
	}
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		token ColorToken
		valid bool
	}{
		{TokenMarkupKey, true},
		{TokenPopupSelected, true},
		{ColorToken("markup.link"), true},
		{ColorToken("invalid.token"), false},
		{ColorToken(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			require.Equal(t, tt.valid, isValidToken(tt.token))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#FFFFFF", true},
		{"#abc", true},
		{"#AbCdEf", true},
		{"FFFFFF", false},   // Missing #
		{"#FF", false},      // Too short
		{"#FFFFFFF", false}, // Too long
		{"#GGGGGG", false},  // Invalid chars
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
