package index

import (
	"fmt"
	"time"

	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/log"
)

// Matcher names an index implementation.
type Matcher string

const (
	MatcherFuzzy     Matcher = "fuzzy"
	MatcherSubstring Matcher = "substring"
)

// New returns an index of the given kind over items.
func New(m Matcher, items []completion.Candidate) (completion.Index, error) {
	switch m {
	case MatcherFuzzy, "":
		return NewFuzzy(items), nil
	case MatcherSubstring:
		return NewSubstring(items), nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", m)
	}
}

// Build creates one cached index per category.
func Build(items map[completion.Category][]completion.Candidate, m Matcher, ttl time.Duration) (completion.Indexes, error) {
	var out completion.Indexes
	for _, cat := range completion.Categories() {
		ix, err := New(m, items[cat])
		if err != nil {
			return completion.Indexes{}, err
		}
		cached := NewCached(string(cat), ix, ttl)
		switch cat {
		case completion.CategoryKeys:
			out.Keys = cached
		case completion.CategorySymbols:
			out.Symbols = cached
		case completion.CategoryIcons:
			out.Icons = cached
		case completion.CategoryAnnotations:
			out.Annotations = cached
		}
		log.Debug(log.CatIndex, "index built", "category", cat, "matcher", m, "items", len(items[cat]))
	}
	return out, nil
}
