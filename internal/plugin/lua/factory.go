package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyrc/internal/commands"
	"github.com/dshills/keyrc/internal/logging"
	"github.com/dshills/keyrc/internal/rc"
)

// ModuleName is the global table scripts register commands through.
const ModuleName = "keyrc"

// Command is a custom command defined by a Lua script.
type Command struct {
	// Name is the dash-cased command name.
	Name string

	// Arg is the argument text, empty for commands without one.
	Arg string

	// Count is the numeric prefix typed before the command, if any.
	Count *int

	// Data is the first value returned by the command's run function.
	Data any
}

// String renders the command as it would be typed.
func (c Command) String() string {
	if c.Arg == "" {
		return c.Name
	}
	return c.Name + " " + c.Arg
}

// Factory creates commands defined by Lua scripts. Definitions are held
// in a commands.Table, so Lua commands follow the same naming and argument
// rules as commands declared in Go.
// It is safe for concurrent use.
type Factory struct {
	state  *State
	logger *logging.Logger
	table  *commands.Table[Command]
}

var (
	_ rc.CommandFactory[Command] = (*Factory)(nil)
	_ rc.MetaDataProvider        = (*Factory)(nil)
)

// NewFactory creates a factory with its own Lua state.
func NewFactory(opts ...StateOption) *Factory {
	f := &Factory{
		state:  NewState(opts...),
		logger: logging.NullLogger,
		table:  commands.NewTable[Command](),
	}
	f.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"command": f.luaCommand,
		"remove":  f.luaRemove,
		"log":     f.luaLog,
	})
	return f
}

// SetLogger sets the logger scripts write to through keyrc.log.
func (f *Factory) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.NullLogger
	}
	f.logger = l.WithComponent("lua")
}

// LoadFile runs the script at path, registering the commands it defines.
func (f *Factory) LoadFile(path string) error {
	if err := f.state.DoFile(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	f.logger.WithField("file", path).Debug("loaded, %d commands defined", f.Len())
	return nil
}

// LoadString runs a script held in memory.
func (f *Factory) LoadString(code string) error {
	return f.state.DoString(code)
}

// luaCommand implements keyrc.command{...}.
func (f *Factory) luaCommand(L *lua.LState) int {
	spec := L.CheckTable(1)

	name, ok := spec.RawGetString("name").(lua.LString)
	if !ok || strings.TrimSpace(string(name)) == "" {
		L.RaiseError("%v: name must be a non-empty string", ErrInvalidCommand)
		return 0
	}
	dash := commands.ToDashName(string(name))

	var run *lua.LFunction
	switch v := spec.RawGetString("run").(type) {
	case *lua.LFunction:
		run = v
	case *lua.LNilType:
	default:
		L.RaiseError("%v: %s: run must be a function, got %s", ErrInvalidCommand, dash, v.Type())
		return 0
	}

	err := f.table.Register(commands.Spec[Command]{
		Name:    dash,
		HasArg:  lua.LVAsBool(spec.RawGetString("arg")),
		Help:    lua.LVAsString(spec.RawGetString("help")),
		Hidden:  lua.LVAsBool(spec.RawGetString("hidden")),
		Special: lua.LVAsBool(spec.RawGetString("special")),
		Build:   f.builder(dash, run),
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// luaRemove implements keyrc.remove(name). It returns whether a command
// of that name was defined.
func (f *Factory) luaRemove(L *lua.LState) int {
	removed := f.table.Unregister(commands.ToDashName(L.CheckString(1)))
	L.Push(lua.LBool(removed))
	return 1
}

// luaLog implements keyrc.log(message).
func (f *Factory) luaLog(L *lua.LState) int {
	f.logger.Info("%s", L.CheckString(1))
	return 0
}

// builder returns the Build function of a Lua command. It calls run with
// the argument and the count (nil when absent). A run function returning
// nil and a message fails the command with that message.
func (f *Factory) builder(name string, run *lua.LFunction) func(string, *int) (Command, error) {
	return func(arg string, prefix *int) (Command, error) {
		c := Command{Name: name, Arg: arg, Count: prefix}
		if run == nil {
			return c, nil
		}

		count := lua.LValue(lua.LNil)
		if prefix != nil {
			count = lua.LNumber(*prefix)
		}
		results, err := f.state.Call(run, lua.LString(arg), count)
		if err != nil {
			return Command{}, err
		}

		if len(results) > 0 {
			c.Data = ToGoValue(results[0])
		}
		if len(results) > 1 && results[0] == lua.LNil && results[1] != lua.LNil {
			return Command{}, fmt.Errorf("%s: %s", name, lua.LVAsString(results[1]))
		}
		return c, nil
	}
}

// Create implements rc.CommandFactory.
func (f *Factory) Create(name, arg string, prefix *int) (Command, error) {
	return f.table.Create(name, arg, prefix)
}

// HasArgument implements rc.CommandFactory.
func (f *Factory) HasArgument(name string) (bool, error) {
	return f.table.HasArgument(name)
}

// MetaData implements rc.MetaDataProvider.
func (f *Factory) MetaData() map[string]rc.MetaData {
	return f.table.MetaData()
}

// Names returns the names of all defined commands, sorted.
func (f *Factory) Names() []string {
	return f.table.Names()
}

// Len returns the number of defined commands.
func (f *Factory) Len() int {
	return f.table.Len()
}

// Close releases the Lua state.
func (f *Factory) Close() error {
	return f.state.Close()
}
