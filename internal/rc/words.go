package rc

import "unicode"

// Word is a whitespace-delimited token of a line.
type Word struct {
	// Text is the token itself.
	Text string
	// Offset is the byte offset of Text in the scanned string.
	Offset int
	// Column is the 0-based rune column of Text in the scanned string.
	Column int
}

// MaybeWord returns the first word of s, or false if s is blank.
func MaybeWord(s string) (Word, bool) {
	words, ok := Words(s, 1)
	if !ok {
		return Word{}, false
	}
	return words[0], true
}

// FirstWord returns the first word of s. The caller must have checked that
// s is not blank; otherwise the zero Word is returned.
func FirstWord(s string) Word {
	w, _ := MaybeWord(s)
	return w
}

// Words returns exactly the first n words of s, or false when s holds
// fewer than n words.
func Words(s string, n int) ([]Word, bool) {
	if n <= 0 {
		return nil, false
	}

	words := make([]Word, 0, n)
	start, startCol := -1, 0
	col := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, Word{Text: s[start:i], Offset: start, Column: startCol})
				if len(words) == n {
					return words, true
				}
				start = -1
			}
		} else if start < 0 {
			start, startCol = i, col
		}
		col++
	}
	if start >= 0 {
		words = append(words, Word{Text: s[start:], Offset: start, Column: startCol})
	}
	if len(words) < n {
		return nil, false
	}
	return words, true
}

// CheckIdent verifies that w is a valid setting name: a letter followed by
// letters, digits, '-' or '_'. The error cites pos.
func CheckIdent(w Word, pos Position) error {
	if w.Text == "" {
		return newError(Parse, pos, w.Text, expectIdentifier)
	}
	for i, r := range w.Text {
		ok := unicode.IsLetter(r)
		if i > 0 {
			ok = ok || unicode.IsDigit(r) || r == '-' || r == '_'
		}
		if !ok {
			return newError(Parse, pos, w.Text, expectIdentifier)
		}
	}
	return nil
}
