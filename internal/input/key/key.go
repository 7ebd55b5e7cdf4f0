package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Key is a single key of a mapping: a named key or a character, together
// with the modifiers held while pressing it.
//
// The zero Key is invalid. Keys are comparable and can be used as map keys.
type Key struct {
	// Code identifies the key pressed.
	Code Code

	// Rune is the character for KeyRune keys.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// Char creates an unmodified character key.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Special creates an unmodified named key.
func Special(c Code) Key {
	return Key{Code: c}
}

// Control wraps k with the Control modifier.
func Control(k Key) Key {
	return k.WithModifier(ModCtrl)
}

// Alt wraps k with the Alt modifier.
func Alt(k Key) Key {
	return k.WithModifier(ModAlt)
}

// Shift wraps k with the Shift modifier.
func Shift(k Key) Key {
	return k.WithModifier(ModShift)
}

// WithModifier returns a copy with the specified modifier added.
func (k Key) WithModifier(mod Modifier) Key {
	k.Modifiers = k.Modifiers.With(mod)
	return k
}

// IsRune returns true if this is a character key.
func (k Key) IsRune() bool {
	return k.Code == KeyRune
}

// IsModified returns true if any modifier is held.
func (k Key) IsModified() bool {
	return k.Modifiers != ModNone
}

// Unwrap peels the outermost modifier off k. Control is always outermost,
// then Alt, then Shift, whatever order the chord was written in.
// It returns false when k carries no modifier.
func (k Key) Unwrap() (Modifier, Key, bool) {
	for _, mod := range nestingOrder {
		if k.Modifiers.Has(mod) {
			k.Modifiers = k.Modifiers.Without(mod)
			return mod, k, true
		}
	}
	return ModNone, k, false
}

// Normalize returns the canonical form of k as a terminal reports it.
// Shift on a character key is folded into the character, so Shift(Char('a'))
// becomes Char('A'). Control letters are case-insensitive and always carry a
// lowercase letter, so Control(Char('A')) becomes Control(Char('a')).
// Named keys are returned unchanged.
func (k Key) Normalize() Key {
	if k.Code != KeyRune {
		return k
	}
	if k.Modifiers.HasShift() {
		k.Rune = unicode.ToUpper(k.Rune)
		k.Modifiers = k.Modifiers.Without(ModShift)
	}
	if k.Modifiers.HasCtrl() && isASCIILetter(k.Rune) {
		k.Rune = unicode.ToLower(k.Rune)
	}
	return k
}

// Matches reports whether k and other produce the same terminal input.
func (k Key) Matches(other Key) bool {
	return k.Normalize() == other.Normalize()
}

// Valid reports whether k survives a round trip through its chord syntax,
// that is whether parsing k.String() yields exactly k.
// Keys such as Char('<'), Char(' ') and Shift(Char('1')) can be built but
// have no chord form. A space is written Special(KeySpace).
func (k Key) Valid() bool {
	if k.Code == KeyNone {
		return false
	}
	keys, err := ParseKeys(k.String())
	return err == nil && len(keys) == 1 && keys[0] == k
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// name returns the text written for the key without brackets or modifiers.
func (k Key) name() string {
	if k.Code == KeyRune {
		return string(k.Rune)
	}
	return k.Code.String()
}

// String renders the key in chord syntax: a bare character when it has no
// modifiers, otherwise a bracketed token such as "<C-S-Tab>".
// Examples: "o", "<Enter>", "<C-a>", "<A-S-F4>"
//
// ParseKeys(k.String()) returns k only when k.Valid() holds.
func (k Key) String() string {
	if k.Code == KeyRune && !k.IsModified() {
		return string(k.Rune)
	}
	return "<" + k.Modifiers.ShortString() + k.name() + ">"
}

// GoString implements fmt.GoStringer for debugging. Modifiers are shown
// as nested wrappers in the order Unwrap peels them.
func (k Key) GoString() string {
	var sb strings.Builder
	depth := 0
	for {
		mod, inner, ok := k.Unwrap()
		if !ok {
			break
		}
		switch mod {
		case ModCtrl:
			sb.WriteString("Control(")
		case ModAlt:
			sb.WriteString("Alt(")
		case ModShift:
			sb.WriteString("Shift(")
		}
		k = inner
		depth++
	}
	if k.Code == KeyRune {
		fmt.Fprintf(&sb, "Char(%q)", k.Rune)
	} else {
		sb.WriteString(k.Code.String())
	}
	sb.WriteString(strings.Repeat(")", depth))
	return sb.String()
}
