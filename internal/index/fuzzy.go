// Package index provides ranked-search indexes over candidate catalogs.
package index

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/zjrosen/zenedit/internal/completion"
)

// titlePenalty is subtracted from title hits so a name match outranks a
// title match of similar quality.
const titlePenalty = 10

// Fuzzy ranks candidates by fuzzy subsequence match over name and title.
type Fuzzy struct {
	items []completion.Candidate
}

// NewFuzzy builds a fuzzy index. The slice is not copied.
func NewFuzzy(items []completion.Candidate) *Fuzzy {
	return &Fuzzy{items: items}
}

type names []completion.Candidate

func (n names) String(i int) string { return n[i].Name }
func (n names) Len() int            { return len(n) }

type titles []completion.Candidate

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Search returns matches best first. An empty query returns every item in
// catalog order.
func (f *Fuzzy) Search(query string) ([]completion.Match, error) {
	if query == "" {
		return all(f.items), nil
	}

	best := make(map[int]int)
	for _, m := range fuzzy.FindFrom(query, names(f.items)) {
		best[m.Index] = m.Score
	}
	for _, m := range fuzzy.FindFrom(query, titles(f.items)) {
		score := m.Score - titlePenalty
		if prev, ok := best[m.Index]; !ok || score > prev {
			best[m.Index] = score
		}
	}

	hits := make([]hit, 0, len(best))
	for i, score := range best {
		hits = append(hits, hit{index: i, score: score})
	}
	return rank(hits, f.items), nil
}

type hit struct {
	index int
	score int
}

// rank orders hits by score descending, ties in catalog order.
func rank(hits []hit, items []completion.Candidate) []completion.Match {
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].index < hits[b].index
	})
	out := make([]completion.Match, len(hits))
	for i, h := range hits {
		out[i] = completion.Match{Item: items[h.index], Score: h.score}
	}
	return out
}

func all(items []completion.Candidate) []completion.Match {
	out := make([]completion.Match, len(items))
	for i, item := range items {
		out[i] = completion.Match{Item: item}
	}
	return out
}
