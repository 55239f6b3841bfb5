package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tengjizhang/trs/internal/backend"
	"github.com/tengjizhang/trs/internal/tui"
)

func newUICmd(getApp func() *App) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive reader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			return runUI(cmd.Context(), app, debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Allow the debug pane (toggle with D)")
	return cmd
}

// runUI runs the executor and the reader as one group. When the reader exits
// the command stream is closed and the executor finishes what is queued.
func runUI(ctx context.Context, app *App, debug bool) error {
	exec := backend.NewExecutor(app.service, app.logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return exec.Run(gctx)
	})
	g.Go(func() error {
		err := tui.Run(gctx, tui.Options{
			Commands:     exec.Commands(),
			Events:       exec.Events(),
			Renderer:     app.renderer,
			Logger:       app.logger,
			Tick:         app.cfg.Tick,
			RefreshEvery: app.cfg.RefreshInterval,
			Debug:        debug,
		})
		exec.Close()
		for range exec.Events() {
		}
		return err
	})

	app.logger.Info("reader started", "db", app.cfg.DatabasePath())
	err := g.Wait()
	app.logger.Info("reader stopped", "err", err)
	return err
}
