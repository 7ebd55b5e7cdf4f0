package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCommandsCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the modes and commands config files may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, mode := range a.opts.MappingModes {
				fmt.Fprintf(tw, "%smap\tmode\t\n", mode)
			}
			for _, name := range a.opts.ApplicationCommands {
				fmt.Fprintf(tw, "%s\tapplication\t\n", name)
			}
			if a.factory != nil {
				md := a.factory.MetaData()
				for _, name := range a.factory.Names() {
					m := md[name]
					if m.CompletionHidden && !all {
						continue
					}
					kind := "lua"
					if has, _ := a.factory.HasArgument(name); has {
						kind = "lua <arg>"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", name, kind, m.HelpText)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include commands hidden from completion")
	return cmd
}
