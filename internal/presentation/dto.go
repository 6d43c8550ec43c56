package presentation

import (
	"github.com/zjrosen/zenedit/internal/catalog"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/zd"
)

// CandidateDTO represents one catalog entry for presentation
type CandidateDTO struct {
	Category string `json:"category,omitempty"`
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Icon     string `json:"icon,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

// CompletionDTO is the result of a completion request at one offset.
type CompletionDTO struct {
	Kind       string         `json:"kind"`
	Start      int            `json:"start"`
	Query      string         `json:"query"`
	InsertAt   int            `json:"insert_at"`
	Selected   int            `json:"selected"`
	Candidates []CandidateDTO `json:"candidates"`
	Committed  bool           `json:"committed"`
	Cursor     int            `json:"cursor,omitempty"`
	Patch      string         `json:"patch,omitempty"`
}

// SpanDTO is one highlighted range of the source text.
type SpanDTO struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Class string `json:"class"`
	Text  string `json:"text"`
}

// FromSpans converts highlight spans over text.
func FromSpans(text string, spans []zd.Span) []SpanDTO {
	out := make([]SpanDTO, 0, len(spans))
	for _, s := range spans {
		out = append(out, SpanDTO{Start: s.Start, End: s.End, Class: s.Class.String(), Text: text[s.Start:s.End]})
	}
	return out
}

// FromCandidate converts a candidate of category cat to a DTO. An empty
// category is omitted from the output.
func FromCandidate(cat completion.Category, c completion.Candidate) CandidateDTO {
	return CandidateDTO{
		Category: string(cat),
		Name:     c.Name,
		Title:    c.Title,
		Icon:     c.Icon,
		LogoURL:  c.LogoURL,
	}
}

// FromCandidates converts a candidate list. The result is never nil so it
// encodes as [] rather than null.
func FromCandidates(cat completion.Category, cands []completion.Candidate) []CandidateDTO {
	out := make([]CandidateDTO, 0, len(cands))
	for _, c := range cands {
		out = append(out, FromCandidate(cat, c))
	}
	return out
}

// FromCatalog flattens a catalog in category order.
func FromCatalog(c catalog.Catalog) []CandidateDTO {
	out := make([]CandidateDTO, 0, c.Len())
	for _, cat := range completion.Categories() {
		out = append(out, FromCandidates(cat, c.Get(cat))...)
	}
	return out
}
