package buffer

// Buffer is the document text and cursor for one editor turn. Every edit
// returns a new Buffer; the zero value is an empty document.
type Buffer struct {
	Text   string
	Cursor int
}

// New returns a buffer holding text with the cursor at offset 0.
func New(text string) Buffer {
	return Buffer{Text: text}
}

// At returns a buffer with the cursor clamped into [0, len(text)].
func At(text string, cursor int) Buffer {
	return Buffer{Text: text, Cursor: clamp(cursor, 0, len(text))}
}

// Replace splices replacement over [start, end) and moves the cursor past it.
func (b Buffer) Replace(start, end int, replacement string) Buffer {
	text, cursor := Splice(b.Text, start, end, replacement)
	return Buffer{Text: text, Cursor: cursor}
}

// Insert inserts s at the cursor.
func (b Buffer) Insert(s string) Buffer {
	return b.Replace(b.Cursor, b.Cursor, s)
}

// InsertPair inserts open and close around the cursor, leaving the cursor
// between them.
func (b Buffer) InsertPair(open, close string) Buffer {
	next := b.Insert(open + close)
	next.Cursor -= len(close)
	return next
}

// Backspace deletes the grapheme cluster before the cursor.
func (b Buffer) Backspace() Buffer {
	if b.Cursor == 0 {
		return b
	}
	return b.Replace(PrevBoundary(b.Text, b.Cursor), b.Cursor, "")
}

// Delete deletes the grapheme cluster after the cursor.
func (b Buffer) Delete() Buffer {
	if b.Cursor >= len(b.Text) {
		return b
	}
	next := b.Replace(b.Cursor, NextBoundary(b.Text, b.Cursor), "")
	next.Cursor = b.Cursor
	return next
}

// Left moves the cursor one grapheme cluster left.
func (b Buffer) Left() Buffer {
	b.Cursor = PrevBoundary(b.Text, b.Cursor)
	return b
}

// Right moves the cursor one grapheme cluster right.
func (b Buffer) Right() Buffer {
	b.Cursor = NextBoundary(b.Text, b.Cursor)
	return b
}

// Home moves the cursor to the start of its line.
func (b Buffer) Home() Buffer {
	b.Cursor, _ = LineBounds(b.Text, b.Cursor)
	return b
}

// End moves the cursor to the end of its line.
func (b Buffer) End() Buffer {
	_, b.Cursor = LineBounds(b.Text, b.Cursor)
	return b
}

// Up moves the cursor to the previous line, keeping its display column where
// the line is long enough.
func (b Buffer) Up() Buffer {
	start, _ := LineBounds(b.Text, b.Cursor)
	if start == 0 {
		return b
	}
	col := Column(b.Text, b.Cursor)
	prevStart, prevEnd := LineBounds(b.Text, start-1)
	b.Cursor = OffsetAtColumn(b.Text, prevStart, prevEnd, col)
	return b
}

// Down moves the cursor to the next line, keeping its display column where
// the line is long enough.
func (b Buffer) Down() Buffer {
	_, end := LineBounds(b.Text, b.Cursor)
	if end == len(b.Text) {
		return b
	}
	col := Column(b.Text, b.Cursor)
	nextStart, nextEnd := LineBounds(b.Text, end+1)
	b.Cursor = OffsetAtColumn(b.Text, nextStart, nextEnd, col)
	return b
}

// Line returns the zero-based line number of the cursor.
func (b Buffer) Line() int {
	return LineIndex(b.Text, b.Cursor)
}

// Column returns the display column of the cursor within its line.
func (b Buffer) Column() int {
	return Column(b.Text, b.Cursor)
}
