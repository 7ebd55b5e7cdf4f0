package rc

import (
	"fmt"

	"github.com/dshills/keyrc/internal/input/key"
)

// Command is one parsed line. The concrete type is one of AppCommand,
// CustomCommand, MapCommand, SetCommand or UnmapCommand.
type Command interface {
	command()
}

// AppCommand is a registered application command. It carries no argument.
type AppCommand struct {
	Name string
}

// CustomCommand wraps a value built by the host's CommandFactory.
type CustomCommand[T any] struct {
	Value T
}

// MapCommand binds a key sequence to an action in one mode.
type MapCommand struct {
	// Action is the text after the key sequence, verbatim.
	Action string
	// Keys is the key sequence to bind.
	Keys key.Sequence
	// Mode is the mapping mode prefix, such as "n".
	Mode string
}

// SetCommand assigns a value to a setting.
type SetCommand struct {
	Name  string
	Value Value
}

// UnmapCommand removes a binding from one mode.
type UnmapCommand struct {
	Keys key.Sequence
	Mode string
}

func (AppCommand) command()       {}
func (CustomCommand[T]) command() {}
func (MapCommand) command()       {}
func (SetCommand) command()       {}
func (UnmapCommand) command()     {}

// String renders the command as a config line.
func (c AppCommand) String() string { return c.Name }

// String renders the command as a config line.
func (c MapCommand) String() string {
	return fmt.Sprintf("%smap %s %s", c.Mode, c.Keys, c.Action)
}

// String renders the command as a config line.
func (c SetCommand) String() string {
	return fmt.Sprintf("set %s = %s", c.Name, c.Value)
}

// String renders the command as a config line.
func (c UnmapCommand) String() string {
	return fmt.Sprintf("%sunmap %s", c.Mode, c.Keys)
}
