package rc

// CommandFactory builds host-defined commands from their dash-cased names,
// such as "win-open".
type CommandFactory[T any] interface {
	// Create builds the command name with its argument text. prefix is the
	// numeric count typed before the command, or nil.
	Create(name, arg string, prefix *int) (T, error)

	// HasArgument reports whether name requires an argument. It returns an
	// error when name is not a command of this factory.
	HasArgument(name string) (bool, error)
}

// MetaData describes a command or setting for completion and help.
type MetaData struct {
	// CompletionHidden excludes the entry from completion lists.
	CompletionHidden bool
	// HelpText is a one-line description.
	HelpText string
	// IsSpecialCommand marks commands that take a key or count instead of
	// ordinary text arguments.
	IsSpecialCommand bool
}

// MetaDataProvider exposes metadata keyed by dash-cased name.
type MetaDataProvider interface {
	MetaData() map[string]MetaData
}

// Config holds the parse-time vocabulary. It must not change while a
// parse is running.
type Config struct {
	// MappingModes are the prefixes accepted before map and unmap.
	MappingModes []string
	// ApplicationCommands are argument-less command names handled by the
	// application itself.
	ApplicationCommands []string
}
