// Package completion turns a cursor classification into a ranked candidate
// list and drives the popup session that commits a candidate back into the
// buffer.
package completion

// Candidate is one completion entry. Name is the text inserted on commit.
type Candidate struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	LogoURL string `json:"logo_url,omitempty" yaml:"logo_url,omitempty" toml:"logo_url,omitempty"`
}

// Match is a ranked search hit. Indexes return matches best first.
type Match struct {
	Item  Candidate
	Score int
}

// Index is a ranked-search service over one candidate category. Any
// implementation (substring, fuzzy, weighted) is interchangeable; its
// ordering is authoritative.
type Index interface {
	Search(query string) ([]Match, error)
}

// Category names one of the candidate indexes.
type Category string

const (
	CategoryKeys        Category = "keys"
	CategorySymbols     Category = "symbols"
	CategoryIcons       Category = "icons"
	CategoryAnnotations Category = "annotations"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{CategoryKeys, CategorySymbols, CategoryIcons, CategoryAnnotations}
}

// Indexes holds one index per category. Nil entries yield no candidates.
type Indexes struct {
	Keys        Index
	Symbols     Index
	Icons       Index
	Annotations Index
}

// For returns the index for a category, or nil.
func (ix Indexes) For(c Category) Index {
	switch c {
	case CategoryKeys:
		return ix.Keys
	case CategorySymbols:
		return ix.Symbols
	case CategoryIcons:
		return ix.Icons
	case CategoryAnnotations:
		return ix.Annotations
	default:
		return nil
	}
}
