package rc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Position is a 1-based line and column in a source file.
// Columns count runes, not bytes.
type Position struct {
	Line   int
	Column int
}

// Start returns the position of the first character of a file.
func Start() Position {
	return Position{Line: 1, Column: 1}
}

// Advance returns the position n columns further on the same line.
func (p Position) Advance(n int) Position {
	p.Column += n
	return p
}

// Newline returns the position of the first column of the next line.
func (p Position) Newline() Position {
	return Position{Line: p.Line + 1, Column: 1}
}

// String renders the position the way diagnostics cite it.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// segment is the unconsumed tail of a line together with the position of
// its first rune. Grammar rules pass segments around instead of mutating a
// shared cursor.
type segment struct {
	text string
	pos  Position
}

// at returns the position of w, a word scanned from s.text.
func (s segment) at(w Word) Position {
	return s.pos.Advance(w.Column)
}

// after returns the part of s that follows w.
func (s segment) after(w Word) segment {
	end := w.Offset + len(w.Text)
	return segment{
		text: s.text[end:],
		pos:  s.pos.Advance(w.Column + utf8.RuneCountInString(w.Text)),
	}
}

// eol returns the position just past the last non-blank rune of s.
func (s segment) eol() Position {
	trimmed := strings.TrimRightFunc(s.text, unicode.IsSpace)
	return s.pos.Advance(utf8.RuneCountInString(trimmed))
}

// blank reports whether s holds only whitespace.
func (s segment) blank() bool {
	return strings.TrimSpace(s.text) == ""
}
