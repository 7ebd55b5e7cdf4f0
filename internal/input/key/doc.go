// Package key provides the key types used by mappings and the parser for
// key chords written in configuration files.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a named key (function keys, arrows, Enter...) or KeyRune
//   - Modifier: A bitset of the Control, Alt and Shift modifiers
//   - Key: A Code or rune together with its modifiers
//   - Sequence: The keys of one mapping, in the order they are typed
//
// # Chord Syntax
//
// A chord is written as a single word. Bare characters stand for themselves
// ("o", "-", "+"), bracketed tokens name special keys and may carry any
// number of modifier prefixes:
//
//   - Special keys: "<Enter>", "<Esc>", "<F1>", "<PageDown>", "<Space>"
//   - Modified keys: "<C-a>", "<A-F4>", "<S-Tab>", "<C-S-Tab>"
//
// Modifier prefixes may appear in any order and are normalized, so "<S-C-Tab>"
// and "<C-S-Tab>" parse to the same Key. Several chords may follow each other
// inside one word: "<C-O>o" is Control-O followed by o.
package key
