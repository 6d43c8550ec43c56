package buffer

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Offsets in this package are byte offsets. The helpers below move them by
// whole grapheme clusters so a cursor never lands inside a rune or between a
// base character and its combining marks.

// PrevBoundary returns the byte offset of the grapheme cluster boundary
// immediately before off. Returns 0 when off <= 0.
func PrevBoundary(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(text) {
		off = len(text)
	}

	pos := strings.LastIndexByte(text[:off-1], '\n') + 1
	state := -1
	s := text[pos:]
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if pos+len(cluster) >= off {
			return pos
		}
		pos += len(cluster)
		s = rest
		state = newState
	}
	return pos
}

// NextBoundary returns the byte offset of the grapheme cluster boundary
// immediately after off. Returns len(text) when off is at or past the end.
func NextBoundary(text string, off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(text) {
		return len(text)
	}
	cluster, _, _, _ := uniseg.StepString(text[off:], -1)
	return off + len(cluster)
}

// LineBounds returns the byte range [start, end) of the line containing off,
// excluding its trailing newline.
func LineBounds(text string, off int) (start, end int) {
	off = clamp(off, 0, len(text))
	start = strings.LastIndexByte(text[:off], '\n') + 1
	end = strings.IndexByte(text[off:], '\n')
	if end < 0 {
		return start, len(text)
	}
	return start, off + end
}

// LineIndex returns the zero-based line number of off.
func LineIndex(text string, off int) int {
	return strings.Count(text[:clamp(off, 0, len(text))], "\n")
}

// Column returns the display column of off within its line, in terminal cells.
func Column(text string, off int) int {
	off = clamp(off, 0, len(text))
	start, _ := LineBounds(text, off)
	return runewidth.StringWidth(text[start:off])
}

// OffsetAtColumn returns the offset within text[start:end] whose display
// column is the largest one not exceeding col. Wide clusters are never split.
func OffsetAtColumn(text string, start, end, col int) int {
	pos := start
	width := 0
	state := -1
	s := text[start:end]
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if width+w > col {
			break
		}
		width += w
		pos += len(cluster)
		s = rest
		state = newState
	}
	return pos
}

// OffsetAt returns the offset of display column col on zero-based line,
// clamped to the document. Used to map a pointer position to the buffer.
func OffsetAt(text string, line, col int) int {
	start := 0
	for ; line > 0; line-- {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			break
		}
		start += i + 1
	}
	_, end := LineBounds(text, start)
	return OffsetAtColumn(text, start, end, max(col, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
