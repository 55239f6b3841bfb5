package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			channels, err := app.service.ListChannels(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list channels: %w", err)
			}

			out := cmd.OutOrStdout()
			if handled, err := writeStructured(out, getOutput(), channels); handled {
				return err
			}
			writeChannelsTable(out, channels, getOutput() == OutputWide)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum channels to list (0 = all)")
	return cmd
}
