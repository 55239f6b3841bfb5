package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a channel and its articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if err := requirePositive("id", id); err != nil {
				return err
			}

			if _, err := app.service.RemoveChannel(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove channel: %w", err)
			}

			out := cmd.OutOrStdout()
			if handled, err := writeStructured(out, getOutput(), RemoveChannelResponse{RemovedChannelID: id}); handled {
				return err
			}
			fmt.Fprintf(out, "Removed channel %d\n", id)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Channel ID")
	mustMarkRequired(cmd, "id")
	return cmd
}
