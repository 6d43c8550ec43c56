// Package zd implements the token vocabulary of the zendoc markup: the cursor
// token classifier used by completion and the span-based syntax highlighter.
package zd

// Kind identifies what kind of token the cursor is sitting in.
type Kind int

const (
	KindNone       Kind = iota
	KindKey             // :key
	KindSymbol          // #symbol, or a bare value after a key
	KindAnnotation      // ^annotation
	KindString          // "quoted
)

// Sigils that introduce tokens.
const (
	KeySigil        = ':'
	SymbolSigil     = '#'
	AnnotationSigil = '^'
	QuoteSigil      = '"'
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindKey:
		return "key"
	case KindSymbol:
		return "symbol"
	case KindAnnotation:
		return "annotation"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying a cursor position.
// Start is the byte offset of the token's leading sigil, or for symbols the
// offset just past the sigil or separating delimiter.
type Classification struct {
	Kind  Kind
	Start int
}

// None is the empty classification.
var None = Classification{}

// IsNone reports whether the cursor is not inside a completable token.
func (c Classification) IsNone() bool {
	return c.Kind == KindNone
}

// Valid reports whether the classification can be applied to a cursor at
// offset cursor, i.e. 0 <= Start <= cursor.
func (c Classification) Valid(cursor int) bool {
	if c.Kind == KindNone {
		return true
	}
	return c.Start >= 0 && c.Start <= cursor
}

// Query returns the partial token text text[Start:cursor].
// Returns "" for KindNone or an invalid classification.
func (c Classification) Query(text string, cursor int) string {
	if c.Kind == KindNone || !c.Valid(cursor) || cursor > len(text) {
		return ""
	}
	return text[c.Start:cursor]
}
