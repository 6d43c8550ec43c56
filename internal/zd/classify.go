package zd

import "strings"

// Classify determines the token the cursor sits in without parsing the
// document. It scans backward from cursor-1 to the start of the current line
// and applies, at each byte, in order:
//
//  1. '^' at line start, or directly left of the cursor: annotation.
//  2. ':' outside a string, at line start or after a space/tab: key.
//  3. An unescaped '"' that opens a string the cursor is still inside: string.
//     Other quotes are skipped.
//  4. '#' followed by a body character, outside a string: symbol after the '#'.
//  5. Any non-body character other than '/' followed by a body character,
//     outside a string, on a line that starts with a key or annotation: a bare
//     symbol value after the delimiter.
//
// Body characters are ASCII letters, digits, '.' and '-'. Token boundaries
// never cross lines. Offsets are byte offsets.
func Classify(text string, cursor int) Classification {
	if cursor <= 0 || cursor > len(text) {
		return None
	}

	lineStart := strings.LastIndexByte(text[:cursor], '\n') + 1
	if lineStart == cursor {
		return None
	}

	total := countQuotes(text, lineStart, cursor)
	lead := text[lineStart]
	inKey := (lead == KeySigil || lead == AnnotationSigil) && total%2 == 0

	wasBody := isBody(text[cursor-1])
	seen := 0 // unescaped quotes in (i, cursor)

	for i := cursor - 1; i >= lineStart; i-- {
		c := text[i]
		scanned := cursor - i

		quote := isQuote(text, i)
		before := total - seen
		if quote {
			before--
		}
		inString := before%2 == 1

		switch {
		case c == AnnotationSigil && (i == lineStart || scanned == 1):
			return Classification{Kind: KindAnnotation, Start: i}

		case c == KeySigil && !inString && (i == lineStart || isBlank(text[i-1])):
			return Classification{Kind: KindKey, Start: i}

		case quote:
			if seen == 0 && !inString {
				return Classification{Kind: KindString, Start: i}
			}
			seen++
			wasBody = false
			continue

		case scanned > 1 && c == SymbolSigil && wasBody && !inString:
			return Classification{Kind: KindSymbol, Start: i + 1}

		case scanned > 1 && inKey && wasBody && !inString && !isBody(c) && c != '/':
			return Classification{Kind: KindSymbol, Start: i + 1}
		}

		wasBody = isBody(c)
	}

	return None
}

// countQuotes counts unescaped double quotes in text[from:to].
func countQuotes(text string, from, to int) int {
	n := 0
	for i := from; i < to; i++ {
		if isQuote(text, i) {
			n++
		}
	}
	return n
}

// isQuote reports whether text[i] is a double quote not preceded by a backslash.
func isQuote(text string, i int) bool {
	return text[i] == QuoteSigil && (i == 0 || text[i-1] != '\\')
}

// isBody reports whether c belongs to the token-body character class.
func isBody(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
