package rc

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind identifies the type of a Value.
type Kind uint8

const (
	// KindStr is a string value. It is the fallback classification.
	KindStr Kind = iota
	// KindBool is true or false.
	KindBool
	// KindFloat is a decimal number with a fractional part.
	KindFloat
	// KindInt is a non-negative integer.
	KindInt
)

// String returns the type name used in settings errors.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt:
		return "integer"
	default:
		return "string"
	}
}

// Value is the typed right-hand side of a set command.
type Value struct {
	Kind  Kind
	Bool  bool
	Float float64
	Int   int64
	Str   string
}

// BoolValue returns a KindBool value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FloatValue returns a KindFloat value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// IntValue returns a KindInt value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// StrValue returns a KindStr value.
func StrValue(s string) Value { return Value{Kind: KindStr, Str: s} }

// String renders the value the way it would be written in a file.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Str
	}
}

// ParseValue classifies s. The checks run in order: true or false, an
// integer made of ASCII digits, digits with exactly one dot, and finally a
// string holding s with surrounding whitespace removed.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)

	switch s {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return StrValue(s)
		}
	}

	switch {
	case digits > 0 && dots == 0:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(n)
		}
	case digits > 0 && dots == 1:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatValue(f)
		}
	}
	return StrValue(s)
}

// stripComment cuts s at the first '#' that starts s or follows whitespace.
func stripComment(s string) string {
	prev := ' '
	for i, r := range s {
		if r == '#' && unicode.IsSpace(prev) {
			return s[:i]
		}
		prev = r
	}
	return s
}
