package completion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/zjrosen/zenedit/internal/zd"
)

// Direction moves the selection.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Edit replaces Text over the byte range [Start, End).
type Edit struct {
	Start int
	End   int
	Text  string
}

// Session is an open completion popup. A nil *Session is the Closed state.
type Session struct {
	ID         string
	Kind       zd.Kind
	Candidates []Candidate
	Selected   int
	// InsertAt is where a commit starts replacing text.
	InsertAt int
	// Cursor is the cursor offset when the session opened; a commit replaces
	// text up to here.
	Cursor int

	// sigil is set when InsertAt was moved back over a '#' that introduced
	// the symbol.
	sigil bool
}

// Open starts a session for classification c at cursor. Returns nil (Closed)
// when c is None or there are no candidates.
func Open(c zd.Classification, text string, cursor int, candidates []Candidate) *Session {
	if c.IsNone() || len(candidates) == 0 {
		return nil
	}

	s := &Session{
		ID:         uuid.NewString(),
		Kind:       c.Kind,
		Candidates: candidates,
		InsertAt:   c.Start,
		Cursor:     cursor,
	}
	// Symbol names carry their '#', so the replaced range includes it
	if c.Kind == zd.KindSymbol && c.Start > 0 && text[c.Start-1] == zd.SymbolSigil {
		s.InsertAt--
		s.sigil = true
	}
	return s
}

// IsOpen reports whether the session is live.
func (s *Session) IsOpen() bool {
	return s != nil && len(s.Candidates) > 0
}

// Navigate moves the selection by d, wrapping at either end.
func (s *Session) Navigate(d Direction) {
	if !s.IsOpen() {
		return
	}
	n := len(s.Candidates)
	s.Selected = ((s.Selected+int(d))%n + n) % n
}

// Current returns the selected candidate.
func (s *Session) Current() (Candidate, bool) {
	if !s.IsOpen() || s.Selected < 0 || s.Selected >= len(s.Candidates) {
		return Candidate{}, false
	}
	return s.Candidates[s.Selected], true
}

// Select moves the selection to i. Out-of-range indexes are ignored.
func (s *Session) Select(i int) bool {
	if !s.IsOpen() || i < 0 || i >= len(s.Candidates) {
		return false
	}
	s.Selected = i
	return true
}

// Edit returns the buffer edit that commits the selected candidate.
func (s *Session) Edit() (Edit, bool) {
	cand, ok := s.Current()
	if !ok {
		return Edit{}, false
	}
	start := s.InsertAt
	if s.sigil && !strings.HasPrefix(cand.Name, string(zd.SymbolSigil)) {
		// Keep the typed '#' when the candidate lacks one
		start++
	}
	return Edit{Start: start, End: s.Cursor, Text: cand.Name}, true
}

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Candidates = append([]Candidate(nil), s.Candidates...)
	return &c
}
