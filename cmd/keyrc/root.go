package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keyrc/internal/config/loader"
	"github.com/dshills/keyrc/internal/logging"
	"github.com/dshills/keyrc/internal/plugin/lua"
	"github.com/dshills/keyrc/internal/rc"
)

// errDiagnostics makes the process exit non-zero after a report listing
// errors has been written.
var errDiagnostics = errors.New("config has errors")

// app holds what the subcommands share once the persistent flags have
// been processed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	luaScript  string

	opts    loader.Options
	logger  *logging.Logger
	factory *lua.Factory
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		opts:   loader.Defaults(),
		logger: logging.NullLogger,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keyrc",
		Short: "Check and inspect keyrc configuration files",
		Long: `keyrc parses configuration files made of set, include, map and unmap
lines plus application commands, and reports every line that fails.

The mapping modes and application commands come from an options file
(--config, TOML or YAML) and KEYRC_* environment variables. Custom
commands may be defined in Lua with --lua.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "options file (.toml, .yaml or .yml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.luaScript, "lua", "", "Lua script defining custom commands")

	root.AddCommand(
		newCheckCmd(a),
		newKeysCmd(a),
		newWatchCmd(a),
		newCommandsCmd(a),
		newCompleteCmd(a),
	)
	return root
}

// setup loads the options, configures logging and runs the Lua script.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	opts, err := loader.Load(loader.DefaultFS(), a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		opts.LogLevel = a.logLevel
	}
	level, ok := logging.ParseLevel(opts.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}
	a.opts = opts
	a.logger = logging.New(logging.Config{Level: level, Output: a.stderr, Prefix: "keyrc"})

	if a.luaScript != "" {
		f := lua.NewFactory()
		f.SetLogger(a.logger)
		if err := f.LoadFile(a.luaScript); err != nil {
			_ = f.Close()
			return err
		}
		a.factory = f
	}
	return nil
}

func (a *app) close() {
	if a.factory != nil {
		_ = a.factory.Close()
	}
}

// parser creates a parser for the configured vocabulary.
func (a *app) parser() *rc.Parser[lua.Command] {
	var factory rc.CommandFactory[lua.Command]
	if a.factory != nil {
		factory = a.factory
	}
	p := rc.NewWithConfig(factory, rc.Config{
		MappingModes:        a.opts.MappingModes,
		ApplicationCommands: a.opts.ApplicationCommands,
	})
	if a.opts.IncludePath != "" {
		p.SetIncludePath(a.opts.IncludePath)
	}
	p.SetLogger(a.logger)
	return p
}

// useColor reports whether w is a terminal that accepts ANSI colours.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
