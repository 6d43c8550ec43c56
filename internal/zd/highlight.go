package zd

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// Class tags a highlighted span.
type Class int

const (
	ClassPlain Class = iota
	ClassKey
	ClassSymbol
	ClassAnnotation
	ClassString
	ClassLink
)

// String returns the class name used in rendered HTML.
func (c Class) String() string {
	switch c {
	case ClassKey:
		return "key"
	case ClassSymbol:
		return "symbol"
	case ClassAnnotation:
		return "annotation"
	case ClassString:
		return "string"
	case ClassLink:
		return "link"
	default:
		return "plain"
	}
}

// Span is a highlighted byte range [Start, End) of the source text.
// Pass is the index of the pattern pass that produced it; lower passes take
// precedence where spans overlap.
type Span struct {
	Start int
	End   int
	Class Class
	Pass  int
}

// Segment is a run of source text with a single resolved class.
type Segment struct {
	Text  string
	Class Class
}

type pass struct {
	class Class
	re    *regexp.Regexp
}

// passes are applied in this order, each against the raw source text.
var passes = []pass{
	{ClassKey, regexp.MustCompile(`:[a-zA-Z0-9][-.:/_a-zA-Z0-9]+`)},
	{ClassSymbol, regexp.MustCompile(`#[-.:_a-zA-Z0-9]+`)},
	{ClassAnnotation, regexp.MustCompile(`\^[-_a-zA-Z0-9]+`)},
	{ClassString, regexp.MustCompile(`"[^"]+"`)},
	{ClassLink, regexp.MustCompile(`\(\([^)]+\)\)`)},
	{ClassLink, regexp.MustCompile(`\[\[[^\]]+\]\]`)},
}

// Highlight runs every pattern pass over text and returns the matched spans
// sorted by start offset (ties broken by pass order). Passes never see each
// other's output, so spans from different passes may overlap; Segments
// resolves overlaps. An unmatched document yields no spans.
func Highlight(text string) []Span {
	var spans []Span
	for i, p := range passes {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1], Class: p.class, Pass: i})
		}
	}
	sort.SliceStable(spans, func(a, b int) bool {
		if spans[a].Start != spans[b].Start {
			return spans[a].Start < spans[b].Start
		}
		return spans[a].Pass < spans[b].Pass
	})
	return spans
}

// Segments flattens spans into contiguous, non-overlapping runs covering all
// of text. Where spans overlap, each byte keeps the class of the earliest
// pass that matched it.
func Segments(text string, spans []Span) []Segment {
	if text == "" {
		return nil
	}
	if len(spans) == 0 {
		return []Segment{{Text: text, Class: ClassPlain}}
	}

	owner := make([]Class, len(text))
	rank := make([]int, len(text))
	for i := range rank {
		rank[i] = len(passes)
	}
	for _, s := range spans {
		for b := max(s.Start, 0); b < min(s.End, len(text)); b++ {
			if s.Pass < rank[b] {
				rank[b] = s.Pass
				owner[b] = s.Class
			}
		}
	}

	var segments []Segment
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || owner[i] != owner[start] {
			segments = append(segments, Segment{Text: text[start:i], Class: owner[start]})
			start = i
		}
	}
	return segments
}

// Render returns text with ANSI styling applied per highlight class.
// Empty strings return empty strings.
func Render(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(RenderLines(text), "\n")
}

// RenderLines renders text line by line so multi-line spans are styled on
// each line independently, which keeps terminal output well-formed.
func RenderLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	var cur strings.Builder
	for _, seg := range Segments(text, Highlight(text)) {
		parts := strings.Split(seg.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			if part != "" {
				cur.WriteString(styleSegment(Segment{Text: part, Class: seg.Class}))
			}
		}
	}
	return append(lines, cur.String())
}

// RenderHTML returns text as HTML with each highlighted segment wrapped in a
// class-tagged element. Every segment is escaped exactly once, so markup in
// the source can never reach the output unescaped.
func RenderHTML(text string) string {
	var b strings.Builder
	for _, seg := range Segments(text, Highlight(text)) {
		escaped := html.EscapeString(seg.Text)
		if seg.Class == ClassPlain {
			b.WriteString(escaped)
			continue
		}
		b.WriteString(`<b class="zd-`)
		b.WriteString(seg.Class.String())
		b.WriteString(`">`)
		b.WriteString(escaped)
		b.WriteString(`</b>`)
	}
	return b.String()
}
