// Package catalog supplies the candidates behind the completion indexes:
// built-in defaults, YAML or TOML catalog files, and a SQLite store.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/zd"
)

// ErrUnknownCategory is returned for a category name that is not one of the
// four completion indexes.
var ErrUnknownCategory = errors.New("unknown catalog category")

// Catalog holds the candidates for every completion index.
type Catalog struct {
	Keys        []completion.Candidate `yaml:"keys" toml:"keys"`
	Symbols     []completion.Candidate `yaml:"symbols" toml:"symbols"`
	Icons       []completion.Candidate `yaml:"icons" toml:"icons"`
	Annotations []completion.Candidate `yaml:"annotations" toml:"annotations"`
}

// Default returns the built-in catalog used when nothing is configured.
func Default() Catalog {
	return Catalog{
		Keys: []completion.Candidate{
			{Name: ":title", Title: "Document title"},
			{Name: ":tags", Title: "Comma separated tags"},
			{Name: ":desc", Title: "Short description"},
			{Name: ":role", Title: "Role of the document"},
		},
	}
}

// ParseCategory resolves a category name. Singular forms are accepted.
func ParseCategory(name string) (completion.Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range completion.Categories() {
		if n == string(c) || n+"s" == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Get returns the candidates of one category.
func (c Catalog) Get(cat completion.Category) []completion.Candidate {
	switch cat {
	case completion.CategoryKeys:
		return c.Keys
	case completion.CategorySymbols:
		return c.Symbols
	case completion.CategoryIcons:
		return c.Icons
	case completion.CategoryAnnotations:
		return c.Annotations
	default:
		return nil
	}
}

// Add appends candidates to a category.
func (c *Catalog) Add(cat completion.Category, cands ...completion.Candidate) error {
	switch cat {
	case completion.CategoryKeys:
		c.Keys = append(c.Keys, cands...)
	case completion.CategorySymbols:
		c.Symbols = append(c.Symbols, cands...)
	case completion.CategoryIcons:
		c.Icons = append(c.Icons, cands...)
	case completion.CategoryAnnotations:
		c.Annotations = append(c.Annotations, cands...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return nil
}

// Len returns the total number of candidates.
func (c Catalog) Len() int {
	return len(c.Keys) + len(c.Symbols) + len(c.Icons) + len(c.Annotations)
}

// Items returns the candidates keyed by category, ready for index.Build.
func (c Catalog) Items() map[completion.Category][]completion.Candidate {
	out := make(map[completion.Category][]completion.Candidate, 4)
	for _, cat := range completion.Categories() {
		out[cat] = c.Get(cat)
	}
	return out
}

// Normalize returns a copy whose names carry their category's sigil: keys
// start with ':', symbols with '#' and annotations with '^'. Icon names are
// stored bare. Blank names are dropped.
func (c Catalog) Normalize() Catalog {
	return Catalog{
		Keys:        normalize(c.Keys, sigilOf(completion.CategoryKeys)),
		Symbols:     normalize(c.Symbols, sigilOf(completion.CategorySymbols)),
		Icons:       normalize(c.Icons, sigilOf(completion.CategoryIcons)),
		Annotations: normalize(c.Annotations, sigilOf(completion.CategoryAnnotations)),
	}
}

// NormalizeName spells a single name the way Normalize stores it in cat.
// It returns "" for a blank name.
func NormalizeName(cat completion.Category, name string) string {
	return normalizeName(name, sigilOf(cat))
}

func sigilOf(cat completion.Category) byte {
	switch cat {
	case completion.CategoryKeys:
		return zd.KeySigil
	case completion.CategorySymbols:
		return zd.SymbolSigil
	case completion.CategoryAnnotations:
		return zd.AnnotationSigil
	default:
		return 0
	}
}

func normalize(cands []completion.Candidate, sigil byte) []completion.Candidate {
	var out []completion.Candidate
	for _, cand := range cands {
		name := normalizeName(cand.Name, sigil)
		if name == "" {
			continue
		}
		cand.Name = name
		out = append(out, cand)
	}
	return out
}

func normalizeName(name string, sigil byte) string {
	name = strings.TrimSpace(name)
	if sigil == 0 {
		name = strings.TrimLeft(name, ":#^")
	} else if name != "" && name[0] != sigil {
		name = string(sigil) + name
	}
	if name == string(sigil) {
		return ""
	}
	return name
}
