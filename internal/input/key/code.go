package key

import "fmt"

// Code identifies a keyboard key.
// For character keys, use KeyRune and set the Rune field in Key.
type Code uint16

const (
	// KeyNone represents no key.
	KeyNone Code = iota

	// Editing keys
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEnter
	KeyEscape
	KeySpace
	KeyTab

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Key.Rune.
	KeyRune
)

// codeNames holds the name written between brackets for each special key.
var codeNames = map[Code]string{
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyEnter:     "Enter",
	KeyEscape:    "Esc",
	KeySpace:     "Space",
	KeyTab:       "Tab",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// codeByName is the reverse of codeNames. Lookups are case-sensitive.
var codeByName = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for c, name := range codeNames {
		m[name] = c
	}
	return m
}()

// String returns the name used for the key in chord syntax.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	switch c {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// IsSpecial returns true if this is a special (non-character) key.
func (c Code) IsSpecial() bool {
	return c != KeyNone && c != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (c Code) IsFunctionKey() bool {
	return c >= KeyF1 && c <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (c Code) IsArrowKey() bool {
	return c >= KeyUp && c <= KeyRight
}

// IsNavigationKey returns true if this is a navigation key.
func (c Code) IsNavigationKey() bool {
	return c.IsArrowKey() || (c >= KeyHome && c <= KeyPageDown)
}

// CodeFromName returns the Code for a special key name such as "PageUp".
// Returns KeyNone if the name is not recognized.
func CodeFromName(name string) Code {
	if c, ok := codeByName[name]; ok {
		return c
	}
	return KeyNone
}

// SpecialCodes returns every named key in declaration order.
func SpecialCodes() []Code {
	codes := make([]Code, 0, len(codeNames))
	for c := KeyBackspace; c < KeyRune; c++ {
		codes = append(codes, c)
	}
	return codes
}
