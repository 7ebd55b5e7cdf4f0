package keymap

import (
	"github.com/dshills/keyrc/internal/input/key"
	"github.com/dshills/keyrc/internal/rc"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Mode is the mapping mode, or empty for a global binding.
	Mode string

	// Keys is the key sequence that triggers this binding.
	Keys key.Sequence

	// Action is the command text run when Keys is typed, such as ":open".
	Action string

	// Source indicates where this binding was defined, usually a file path.
	Source string
}

// NewBinding creates a binding from a parsed map command.
func NewBinding(cmd rc.MapCommand) Binding {
	return Binding{
		Mode:   cmd.Mode,
		Keys:   cmd.Keys.Clone(),
		Action: cmd.Action,
	}
}

// WithSource sets the source for this binding.
func (b Binding) WithSource(source string) Binding {
	b.Source = source
	return b
}

// Command converts the binding back to the map command that creates it.
func (b Binding) Command() rc.MapCommand {
	return rc.MapCommand{Action: b.Action, Keys: b.Keys.Clone(), Mode: b.Mode}
}

// String renders the binding as a line of a config file.
func (b Binding) String() string {
	return b.Command().String()
}

// Match checks if this binding's key sequence matches the given sequence.
func (b Binding) Match(seq key.Sequence) bool {
	return b.Keys.Equals(seq)
}

// IsPrefix checks if the given sequence is a prefix of this binding's sequence.
func (b Binding) IsPrefix(seq key.Sequence) bool {
	return b.Keys.HasPrefix(seq)
}
