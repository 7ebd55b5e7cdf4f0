package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keyrc/internal/config/registry"
	"github.com/dshills/keyrc/internal/input/keymap"
	"github.com/dshills/keyrc/internal/rc"
)

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a config file and report every error",
		Long: `Parse a config file and its includes, bind its mappings and apply its
set commands. Every failing line is reported with its position.

Set commands are checked against the settings declared in the options
file; without declarations they are only parsed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := a.check(args[0])
			if asJSON {
				doc, err := rep.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, doc)
			} else {
				rep.WriteText(a.stdout, useColor(a.stdout))
			}
			if rep.Failed() {
				return errDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the report as JSON")
	return cmd
}

// check parses path and builds its report.
func (a *app) check(path string) *report {
	return a.buildReport(path, a.parser().ParseFile(path))
}

// buildReport applies result to fresh key and settings registries and
// collects what failed.
func (a *app) buildReport(path string, result *rc.Result) *report {
	rep := &report{
		File:     path,
		Files:    result.Files,
		Commands: len(result.Commands),
	}
	completer := a.completer()

	keys := keymap.NewRegistry()
	for _, err := range keys.ApplyResult(result) {
		rep.Problems = append(rep.Problems, err.Error())
	}
	rep.Bindings = keys.Len()

	if len(a.opts.Settings) > 0 {
		settings, err := registry.FromDecls(a.opts.Settings)
		if err != nil {
			a.logger.Warn("%v", err)
		}
		for _, err := range settings.Apply(result) {
			rep.Problems = append(rep.Problems, err.Error())
		}
		rep.Settings = len(settings.Values())
		completer.AddSettings(settings)
	}

	rep.addErrors(path, result.Errors, func(word string) (string, bool) {
		c, ok := completer.Suggest(word)
		return c.Name, ok
	})

	a.logger.WithField("file", path).Debug("checked %d files", len(result.Files))
	return rep
}
