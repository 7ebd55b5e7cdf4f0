package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Expected token descriptions used by ParseError.
const (
	expectKey          = "key"
	expectCloseBracket = ">"
	expectSpecial      = "special key"
	expectModified     = "A-Z or special key"
	expectOneChar      = "one character"

	// noToken is reported as the unexpected text when the input ran out.
	noToken = "(none)"
)

// bareKeyPunctuation lists the punctuation that may be written as a key
// without brackets. Letters and digits are always allowed.
const bareKeyPunctuation = "=+-;!\"'#%&()*,./<>?@[\\]^_{|}~$"

// ParseError describes a chord that could not be parsed.
type ParseError struct {
	// Offset is the rune offset of the offending text within the parsed word.
	Offset int
	// Unexpected is the text that was found.
	Unexpected string
	// Expected describes what was expected instead.
	Expected string
	// Err is the sentinel classifying the failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s, expecting %s at offset %d", e.Unexpected, e.Expected, e.Offset)
}

// Unwrap returns the sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseKeys parses a word made of one or more chords into the keys it
// names, in order. "Oo" yields two character keys, "<C-O>o" yields
// Control-O followed by o.
func ParseKeys(spec string) ([]Key, error) {
	if spec == "" {
		return nil, &ParseError{Unexpected: noToken, Expected: expectKey, Err: ErrEmptySpec}
	}

	keys := make([]Key, 0, 2) // Most mappings are short
	offset := 0
	for spec != "" {
		k, size, err := ParseKey(spec)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Offset += offset
			}
			return nil, err
		}
		keys = append(keys, k)
		offset += utf8.RuneCountInString(spec[:size])
		spec = spec[size:]
	}
	return keys, nil
}

// ParseKey parses the first chord of spec and returns the key together
// with the number of bytes consumed.
func ParseKey(spec string) (Key, int, error) {
	r, size := utf8.DecodeRuneInString(spec)
	if size == 0 {
		return Key{}, 0, &ParseError{Unexpected: noToken, Expected: expectKey, Err: ErrEmptySpec}
	}
	if r != '<' {
		if !isBareKey(r) {
			return Key{}, 0, &ParseError{Unexpected: string(r), Expected: expectKey, Err: ErrInvalidSpec}
		}
		return Char(r), size, nil
	}

	end := strings.IndexByte(spec, '>')
	if end < 0 {
		return Key{}, 0, &ParseError{
			Offset:     utf8.RuneCountInString(spec),
			Unexpected: noToken,
			Expected:   expectCloseBracket,
			Err:        ErrUnmatchedBracket,
		}
	}

	k, err := parseBracketed(spec[1:end])
	if err != nil {
		err.Offset++ // account for '<'
		return Key{}, 0, err
	}
	return k, end + 1, nil
}

// parseBracketed parses the text between '<' and '>'.
// Error offsets are relative to the start of inner.
func parseBracketed(inner string) (Key, *ParseError) {
	var mods Modifier
	offset := 0

	// Strip modifier prefixes, in any order and any number.
	for len(inner) >= 2 && inner[1] == '-' {
		mod := modifierFromPrefix(inner[0])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		inner = inner[2:]
		offset += 2
	}

	if code := CodeFromName(inner); code != KeyNone {
		return Key{Code: code, Modifiers: mods}, nil
	}

	count := utf8.RuneCountInString(inner)
	if count == 1 {
		r, _ := utf8.DecodeRuneInString(inner)
		if unicode.IsLetter(r) {
			return Key{Code: KeyRune, Rune: r, Modifiers: mods}, nil
		}
	}

	perr := &ParseError{Offset: offset, Unexpected: inner, Err: ErrInvalidSpec}
	switch {
	case count == 0:
		perr.Unexpected = noToken
		perr.Expected = expectSpecial
		if !mods.IsEmpty() {
			perr.Expected = expectModified
		}
	case mods.IsEmpty():
		perr.Expected = expectSpecial
	case count == 1:
		perr.Expected = expectModified
	default:
		perr.Expected = expectOneChar
	}
	return Key{}, perr
}

// isBareKey reports whether r may be written as a key without brackets.
func isBareKey(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(bareKeyPunctuation, r)
}
