package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keyrc/internal/complete"
	"github.com/dshills/keyrc/internal/config/registry"
	"github.com/dshills/keyrc/internal/rc"
)

func newCompleteCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "complete [QUERY]",
		Short: "List the words a config line may start with",
		Long: `List keywords, mapping commands, application commands, Lua commands
and declared settings whose names fuzzily match QUERY, best first.
Without a query every visible word is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			c := a.completer()
			if len(a.opts.Settings) > 0 {
				settings, err := registry.FromDecls(a.opts.Settings)
				if err != nil {
					a.logger.Warn("%v", err)
				}
				c.AddSettings(settings)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, m := range c.Complete(query, limit) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.Kind, m.Help)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many words (0 for all)")
	return cmd
}

// completer creates a completer for the configured vocabulary and the
// Lua commands.
func (a *app) completer() *complete.Completer {
	c := complete.New(rc.Config{
		MappingModes:        a.opts.MappingModes,
		ApplicationCommands: a.opts.ApplicationCommands,
	})
	if a.factory != nil {
		c.AddCommands(a.factory)
	}
	return c
}
