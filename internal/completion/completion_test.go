package completion

import (
	"errors"
	"strings"
)

// listIndex is an in-memory Index that returns every candidate whose name
// contains the query, in list order.
type listIndex struct {
	items   []Candidate
	queries []string
}

func newListIndex(names ...string) *listIndex {
	ix := &listIndex{}
	for _, n := range names {
		ix.items = append(ix.items, Candidate{Name: n})
	}
	return ix
}

func (ix *listIndex) Search(query string) ([]Match, error) {
	ix.queries = append(ix.queries, query)
	var out []Match
	for i, c := range ix.items {
		if strings.Contains(c.Name, query) {
			out = append(out, Match{Item: c, Score: len(ix.items) - i})
		}
	}
	return out, nil
}

type failingIndex struct{}

func (failingIndex) Search(string) ([]Match, error) {
	return nil, errors.New("index unavailable")
}

func testIndexes() Indexes {
	return Indexes{
		Keys:        newListIndex(":title", ":tags", ":desc", ":role"),
		Symbols:     newListIndex("#admin", "#administrator", "#author"),
		Icons:       newListIndex("home", "house", "user"),
		Annotations: newListIndex("^note", "^todo"),
	}
}
