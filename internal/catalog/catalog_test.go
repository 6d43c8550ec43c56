package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/zenedit/internal/completion"
)

func names(cands []completion.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, []string{":title", ":tags", ":desc", ":role"}, names(c.Keys))
	require.Empty(t, c.Symbols)
	require.Empty(t, c.Icons)
	require.Empty(t, c.Annotations)
	require.Equal(t, c, c.Normalize(), "default catalog is already normalized")
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want completion.Category
	}{
		{"keys", completion.CategoryKeys},
		{"key", completion.CategoryKeys},
		{"Symbols", completion.CategorySymbols},
		{" icon ", completion.CategoryIcons},
		{"annotation", completion.CategoryAnnotations},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("links")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestNormalize(t *testing.T) {
	c := Catalog{
		Keys:        []completion.Candidate{{Name: "title"}, {Name: ":tags"}, {Name: " "}, {Name: ":"}},
		Symbols:     []completion.Candidate{{Name: "admin", Title: "Admin"}, {Name: "#ops"}},
		Icons:       []completion.Candidate{{Name: "house"}, {Name: ":fa-x"}},
		Annotations: []completion.Candidate{{Name: "note"}, {Name: "^todo"}},
	}

	got := c.Normalize()
	require.Equal(t, []string{":title", ":tags"}, names(got.Keys))
	require.Equal(t, []string{"#admin", "#ops"}, names(got.Symbols))
	require.Equal(t, "Admin", got.Symbols[0].Title)
	require.Equal(t, []string{"house", "fa-x"}, names(got.Icons))
	require.Equal(t, []string{"^note", "^todo"}, names(got.Annotations))

	require.Equal(t, "title", c.Keys[0].Name, "input is not modified")
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		cat  completion.Category
		in   string
		want string
	}{
		{completion.CategoryKeys, "title", ":title"},
		{completion.CategoryKeys, ":title", ":title"},
		{completion.CategorySymbols, " admin ", "#admin"},
		{completion.CategoryIcons, ":house", "house"},
		{completion.CategoryAnnotations, "todo", "^todo"},
		{completion.CategorySymbols, "#", ""},
		{completion.CategoryIcons, "", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeName(tt.cat, tt.in), "%s %q", tt.cat, tt.in)
	}
}

func TestAddGetItems(t *testing.T) {
	var c Catalog
	require.NoError(t, c.Add(completion.CategorySymbols, completion.Candidate{Name: "#a"}, completion.Candidate{Name: "#b"}))
	require.NoError(t, c.Add(completion.CategoryIcons, completion.Candidate{Name: "house"}))
	require.ErrorIs(t, c.Add("links", completion.Candidate{Name: "x"}), ErrUnknownCategory)

	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"#a", "#b"}, names(c.Get(completion.CategorySymbols)))
	require.Nil(t, c.Get("links"))

	items := c.Items()
	require.Len(t, items, 4)
	require.Len(t, items[completion.CategoryIcons], 1)
	require.Empty(t, items[completion.CategoryKeys])
}
