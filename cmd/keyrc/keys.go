package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keyrc/internal/input/key"
)

func newKeysCmd(a *app) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "keys CHORD...",
		Short: "Show how key chords parse",
		Long: `Parse each argument as the key sequence of a mapping and print its
canonical form, followed by one line per key with its modifier nesting,
its class and the terminal event it matches.

Terminals fold Shift into characters and cannot tell the case of Control
letters, so a key may read back in a different but equivalent form. Keys
that a terminal cannot tell apart from another key are marked ambiguous.`,
		Example: `  keyrc keys '<C-x><C-s>'
  keyrc keys '<S-C-Tab>' gg
  keyrc keys --names`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if names {
				for _, c := range key.SpecialCodes() {
					a.printKey(key.Special(c))
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("requires at least one chord")
			}
			for _, arg := range args {
				seq, err := key.ParseSequence(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(a.stdout, seq)
				for _, k := range seq {
					a.printKey(k)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, "list every named key")
	return cmd
}

func (a *app) printKey(k key.Key) {
	fmt.Fprintf(a.stdout, "  %-12s %-36s %-10s %s\n", k, k.GoString(), keyClass(k), describeEvent(k))
}

func keyClass(k key.Key) string {
	c := k.Code
	switch {
	case k.IsRune():
		return "char"
	case c.IsFunctionKey():
		return "function"
	case c.IsArrowKey():
		return "arrow"
	case c.IsNavigationKey():
		return "navigation"
	case c.IsSpecial():
		return "editing"
	default:
		return "none"
	}
}

// describeEvent names the terminal event for k and how it reads back.
func describeEvent(k key.Key) string {
	ev := k.EventKey()
	if ev == nil {
		return "-"
	}
	desc := ev.Name()
	got, ok := key.FromEventKey(ev)
	switch {
	case !ok:
		desc += ", unreadable"
	case got == k:
	case got.Matches(k):
		desc += ", reads as " + got.String()
	default:
		desc += ", ambiguous with " + got.String()
	}
	return desc
}
