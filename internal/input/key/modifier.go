package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModCtrl indicates the Control key.
	ModCtrl
)

// ModNone indicates no modifiers.
const ModNone Modifier = 0

// nestingOrder lists the modifiers from the outermost to the innermost
// wrapper: Control wraps Alt which wraps Shift.
var nestingOrder = [...]Modifier{ModCtrl, ModAlt, ModShift}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// ShortString returns the chord prefix form like "C-A-S-".
func (m Modifier) ShortString() string {
	var sb strings.Builder
	for _, mod := range nestingOrder {
		if m.Has(mod) {
			sb.WriteString(modifierPrefix[mod])
		}
	}
	return sb.String()
}

// modifierPrefix maps each modifier to its two-character chord prefix.
var modifierPrefix = map[Modifier]string{
	ModCtrl:  "C-",
	ModAlt:   "A-",
	ModShift: "S-",
}

// modifierFromPrefix returns the modifier for a chord prefix letter.
// Prefix letters are case-sensitive.
func modifierFromPrefix(b byte) Modifier {
	switch b {
	case 'C':
		return ModCtrl
	case 'A':
		return ModAlt
	case 'S':
		return ModShift
	default:
		return ModNone
	}
}
