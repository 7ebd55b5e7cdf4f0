package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keyrc/internal/config/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check a config file whenever it or an include changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, args[0], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "quiet period before a reload")
	return cmd
}

// watch reports on path, then again after every change, until ctx is done.
func (a *app) watch(ctx context.Context, path string, debounce time.Duration) error {
	p := a.parser()
	w, err := watcher.New(path, p.ParseFile, watcher.WithDebounce(debounce), watcher.WithLogger(a.logger))
	if err != nil {
		return err
	}
	defer w.Close()

	result, err := w.Load()
	if err != nil {
		return err
	}
	color := useColor(a.stdout)
	a.buildReport(path, result).WriteText(a.stdout, color)

	w.OnReload(func(r watcher.Reload) {
		for _, ev := range r.Events {
			a.logger.WithField("file", ev.Path).Info("changed (%s)", ev.Op)
		}
		a.buildReport(path, r.Result).WriteText(a.stdout, color)
	})

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
