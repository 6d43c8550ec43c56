package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/zenedit/internal/catalog"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/zd"
)

func TestFromCatalog_CategoryOrder(t *testing.T) {
	c := catalog.Catalog{
		Annotations: []completion.Candidate{{Name: "^todo"}},
		Keys:        []completion.Candidate{{Name: ":title", Title: "Title"}},
	}

	dtos := FromCatalog(c)
	require.Equal(t, []CandidateDTO{
		{Category: "keys", Name: ":title", Title: "Title"},
		{Category: "annotations", Name: "^todo"},
	}, dtos)
}

func TestFromCandidates_NeverNil(t *testing.T) {
	dtos := FromCandidates(completion.CategoryIcons, nil)
	require.NotNil(t, dtos)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatJSON(dtos))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatJSON_OmitsEmptyCategory(t *testing.T) {
	var buf bytes.Buffer
	dto := FromCandidate("", completion.Candidate{Name: ":fa-star", Icon: "star"})
	require.NoError(t, NewFormatter(&buf).FormatJSON(dto))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NotContains(t, got, "category")
	require.Equal(t, "star", got["icon"])
}

func TestFormatCandidates(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatCandidates([]CandidateDTO{
		{Category: "keys", Name: ":title", Title: "Document title"},
		{Category: "icons", Name: "github", LogoURL: "https://example.com/gh.png"},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "CATEGORY")
	require.Contains(t, out, ":title")
	require.Contains(t, out, "Document title")
	require.Contains(t, out, "https://example.com/gh.png")
}

func TestFormatCompletion(t *testing.T) {
	t.Run("candidates", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewFormatter(&buf).FormatCompletion(CompletionDTO{
			Kind:     "key",
			Query:    ":t",
			Selected: 1,
			Candidates: []CandidateDTO{
				{Name: ":title"},
				{Name: ":tags"},
			},
		})
		require.NoError(t, err)
		require.Contains(t, buf.String(), `key ":t" at 0`)
		require.Contains(t, buf.String(), "> :tags")
		require.Contains(t, buf.String(), "  :title")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(&buf).FormatCompletion(CompletionDTO{Kind: "none"}))
		require.Equal(t, "none: no candidates\n", buf.String())
	})

	t.Run("committed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(&buf).FormatCompletion(CompletionDTO{Committed: true, Patch: "@@ -1 +1 @@\n"}))
		require.Equal(t, "@@ -1 +1 @@\n", buf.String())
	})
}

func TestFromSpans(t *testing.T) {
	text := `:role #admin`
	dtos := FromSpans(text, zd.Highlight(text))
	require.Equal(t, []SpanDTO{
		{Start: 0, End: 5, Class: "key", Text: ":role"},
		{Start: 6, End: 12, Class: "symbol", Text: "#admin"},
	}, dtos)
}

func TestFormatSpans(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatSpans([]SpanDTO{{Start: 0, End: 5, Class: "key", Text: ":role"}})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "START")
	require.Contains(t, buf.String(), `":role"`)
}
