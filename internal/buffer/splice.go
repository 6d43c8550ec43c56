// Package buffer holds the editable document: an immutable text value plus a
// byte-offset cursor, replaced wholesale on every edit.
package buffer

import "fmt"

// Splice replaces text[start:end] with replacement and returns the new text
// together with the cursor offset just past the inserted text.
//
// The range must satisfy 0 <= start <= end <= len(text). Anything else is a
// programming error and panics rather than returning a corrupted buffer.
func Splice(text string, start, end int, replacement string) (string, int) {
	if start < 0 || start > end || end > len(text) {
		panic(fmt.Sprintf("buffer: splice range [%d:%d] out of bounds for length %d", start, end, len(text)))
	}
	return text[:start] + replacement + text[end:], start + len(replacement)
}
