package key

import (
	"github.com/gdamore/tcell/v2"
)

// tcellKeys maps named keys to their tcell counterparts.
var tcellKeys = map[Code]tcell.Key{
	KeyBackspace: tcell.KeyBackspace2,
	KeyDelete:    tcell.KeyDelete,
	KeyInsert:    tcell.KeyInsert,
	KeyEnter:     tcell.KeyEnter,
	KeyEscape:    tcell.KeyEscape,
	KeyTab:       tcell.KeyTab,
	KeyHome:      tcell.KeyHome,
	KeyEnd:       tcell.KeyEnd,
	KeyPageUp:    tcell.KeyPgUp,
	KeyPageDown:  tcell.KeyPgDn,
	KeyUp:        tcell.KeyUp,
	KeyDown:      tcell.KeyDown,
	KeyLeft:      tcell.KeyLeft,
	KeyRight:     tcell.KeyRight,
	KeyF1:        tcell.KeyF1,
	KeyF2:        tcell.KeyF2,
	KeyF3:        tcell.KeyF3,
	KeyF4:        tcell.KeyF4,
	KeyF5:        tcell.KeyF5,
	KeyF6:        tcell.KeyF6,
	KeyF7:        tcell.KeyF7,
	KeyF8:        tcell.KeyF8,
	KeyF9:        tcell.KeyF9,
	KeyF10:       tcell.KeyF10,
	KeyF11:       tcell.KeyF11,
	KeyF12:       tcell.KeyF12,
}

// fromTcellKeys is the reverse of tcellKeys, plus the legacy backspace code.
var fromTcellKeys = func() map[tcell.Key]Code {
	m := make(map[tcell.Key]Code, len(tcellKeys)+1)
	for c, tk := range tcellKeys {
		m[tk] = c
	}
	m[tcell.KeyBackspace] = KeyBackspace
	return m
}()

// EventKey converts k into a tcell key event, so parsed mappings can be
// compared with or injected into terminal input. The event is built from
// k.Normalize(), the form a terminal would report.
func (k Key) EventKey() *tcell.EventKey {
	k = k.Normalize()
	mods := toTcellMod(k.Modifiers)
	switch k.Code {
	case KeyRune:
		return tcell.NewEventKey(tcell.KeyRune, k.Rune, mods)
	case KeySpace:
		return tcell.NewEventKey(tcell.KeyRune, ' ', mods)
	}
	if tk, ok := tcellKeys[k.Code]; ok {
		return tcell.NewEventKey(tk, 0, mods)
	}
	return nil
}

// FromEventKey converts a tcell key event into a normalized Key.
// Terminals fold Shift into character keys and report Control letters
// without case, so compare the result with parsed keys using Key.Matches.
// It returns false for events that have no chord representation.
func FromEventKey(ev *tcell.EventKey) (Key, bool) {
	if ev == nil {
		return Key{}, false
	}
	mods := fromTcellMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return Key{Code: KeySpace, Modifiers: mods}, true
		}
		return Key{Code: KeyRune, Rune: ev.Rune(), Modifiers: mods}.Normalize(), true
	}
	if c, ok := fromTcellKeys[ev.Key()]; ok {
		return Key{Code: c, Modifiers: mods}, true
	}

	// Control letters arrive as dedicated codes from most terminals.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return Key{Code: KeyRune, Rune: r, Modifiers: mods.With(ModCtrl)}, true
	}
	return Key{}, false
}

// toTcellMod converts modifiers to a tcell modifier mask.
func toTcellMod(m Modifier) tcell.ModMask {
	var mask tcell.ModMask
	if m.HasCtrl() {
		mask |= tcell.ModCtrl
	}
	if m.HasAlt() {
		mask |= tcell.ModAlt
	}
	if m.HasShift() {
		mask |= tcell.ModShift
	}
	return mask
}

// fromTcellMod converts a tcell modifier mask to modifiers.
func fromTcellMod(mask tcell.ModMask) Modifier {
	var m Modifier
	if mask&tcell.ModCtrl != 0 {
		m = m.With(ModCtrl)
	}
	if mask&tcell.ModAlt != 0 {
		m = m.With(ModAlt)
	}
	if mask&tcell.ModShift != 0 {
		m = m.With(ModShift)
	}
	return m
}
