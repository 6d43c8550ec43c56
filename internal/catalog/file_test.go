package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
keys:
  - name: title
    title: Document title
  - name: ":role"
symbols:
  - name: admin
    title: Administrator
    logo_url: https://example.com/admin.png
icons:
  - name: house
annotations:
  - name: note
`

const tomlCatalog = `
[[keys]]
name = "title"
title = "Document title"

[[keys]]
name = ":role"

[[symbols]]
name = "admin"
title = "Administrator"
logo_url = "https://example.com/admin.png"

[[icons]]
name = "house"

[[annotations]]
name = "note"
`

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"catalog.yaml", FormatYAML, false},
		{"catalog.YML", FormatYAML, false},
		{"dir/catalog.toml", FormatTOML, false},
		{"catalog.json", "", true},
		{"catalog", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FormatsAgree(t *testing.T) {
	fromYAML, err := Parse([]byte(yamlCatalog), FormatYAML)
	require.NoError(t, err)
	fromTOML, err := Parse([]byte(tomlCatalog), FormatTOML)
	require.NoError(t, err)

	require.Equal(t, fromYAML, fromTOML)
	require.Equal(t, []string{":title", ":role"}, names(fromYAML.Keys))
	require.Equal(t, "#admin", fromYAML.Symbols[0].Name)
	require.Equal(t, "https://example.com/admin.png", fromYAML.Symbols[0].LogoURL)
	require.Equal(t, "house", fromYAML.Icons[0].Name)
	require.Equal(t, "^note", fromYAML.Annotations[0].Name)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	require.Zero(t, c.Len())
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("links:\n  - name: x\n"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte("[[links]]\nname = \"x\"\n"), FormatTOML)
	require.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("keys: [\n"), FormatYAML)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing yaml catalog")

	_, err = Parse([]byte("[[keys]\n"), FormatTOML)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing toml catalog")

	_, err = Parse([]byte("keys: []"), Format("ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading catalog")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("keys: {"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), bad)
}
