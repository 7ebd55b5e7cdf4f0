package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keyrc/internal/rc"
)

// Errors returned by Table.
var (
	// ErrDuplicateCommand indicates a second registration under one name.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrInvalidSpec indicates a Spec without a name or builder.
	ErrInvalidSpec = errors.New("invalid command spec")
)

// UnknownCommandError is returned for names the table does not hold.
type UnknownCommandError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return "unknown command " + e.Name
}

// Spec declares one command.
type Spec[T any] struct {
	// Name is the Go-style name, such as "WinOpen". The table registers
	// it under its dash-cased form.
	Name string

	// HasArg reports whether the command requires an argument.
	HasArg bool

	// Help is a one-line description.
	Help string

	// Hidden excludes the command from completion.
	Hidden bool

	// Special marks commands that take a count or key rather than text.
	Special bool

	// Build creates the command. arg is empty for commands without an
	// argument; prefix is the count typed before the command, if any.
	Build func(arg string, prefix *int) (T, error)
}

// Table maps dash-cased names to command specs.
// A Table is safe for concurrent use.
type Table[T any] struct {
	mu    sync.RWMutex
	specs map[string]Spec[T]
}

// NewTable creates a table holding specs. It panics on an invalid or
// duplicate spec, so it is meant for package-level declarations.
func NewTable[T any](specs ...Spec[T]) *Table[T] {
	t := &Table[T]{specs: make(map[string]Spec[T], len(specs))}
	for _, s := range specs {
		if err := t.Register(s); err != nil {
			panic(err)
		}
	}
	return t
}

// Register adds spec to the table.
func (t *Table[T]) Register(spec Spec[T]) error {
	if spec.Name == "" || spec.Build == nil {
		return fmt.Errorf("%w: %q", ErrInvalidSpec, spec.Name)
	}
	name := ToDashName(spec.Name)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.specs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	t.specs[name] = spec
	return nil
}

// Unregister removes a command by dash-cased name and reports whether it
// was registered.
func (t *Table[T]) Unregister(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.specs[name]
	delete(t.specs, name)
	return ok
}

func (t *Table[T]) lookup(name string) (Spec[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	spec, ok := t.specs[name]
	if !ok {
		return Spec[T]{}, &UnknownCommandError{Name: name}
	}
	return spec, nil
}

// Create implements rc.CommandFactory. Commands without an argument
// ignore arg.
func (t *Table[T]) Create(name, arg string, prefix *int) (T, error) {
	spec, err := t.lookup(name)
	if err != nil {
		var zero T
		return zero, err
	}
	if !spec.HasArg {
		arg = ""
	}
	return spec.Build(arg, prefix)
}

// HasArgument implements rc.CommandFactory.
func (t *Table[T]) HasArgument(name string) (bool, error) {
	spec, err := t.lookup(name)
	if err != nil {
		return false, err
	}
	return spec.HasArg, nil
}

// MetaData implements rc.MetaDataProvider.
func (t *Table[T]) MetaData() map[string]rc.MetaData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	md := make(map[string]rc.MetaData, len(t.specs))
	for name, s := range t.specs {
		md[name] = rc.MetaData{
			CompletionHidden: s.Hidden,
			HelpText:         s.Help,
			IsSpecialCommand: s.Special,
		}
	}
	return md
}

// Names returns the dash-cased names of all commands, sorted.
func (t *Table[T]) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.specs))
	for name := range t.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of commands.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.specs)
}
