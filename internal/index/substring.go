package index

import (
	"strings"

	"github.com/zjrosen/zenedit/internal/completion"
)

const maxScore = 1 << 16

// Substring ranks case-insensitive substring hits in name or title. Earlier
// hits rank higher; name hits beat title hits.
type Substring struct {
	items []completion.Candidate
	lower []string
}

// NewSubstring builds a substring index.
func NewSubstring(items []completion.Candidate) *Substring {
	lower := make([]string, len(items))
	for i, item := range items {
		lower[i] = strings.ToLower(item.Name) + "\x00" + strings.ToLower(item.Title)
	}
	return &Substring{items: items, lower: lower}
}

// Search returns matches best first.
func (s *Substring) Search(query string) ([]completion.Match, error) {
	if query == "" {
		return all(s.items), nil
	}

	q := strings.ToLower(query)
	var hits []hit
	for i, text := range s.lower {
		at := strings.Index(text, q)
		if at < 0 {
			continue
		}
		hits = append(hits, hit{index: i, score: maxScore - at})
	}
	return rank(hits, s.items), nil
}
