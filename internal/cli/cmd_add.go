package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var link string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Fetch a feed and store its channel and articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			channel, err := app.service.AddChannel(cmd.Context(), link)
			if err != nil {
				return fmt.Errorf("add channel: %w", err)
			}

			out := cmd.OutOrStdout()
			resp := AddChannelResponse{
				Channel:  channel,
				Articles: len(channel.Articles),
				Unread:   channel.UnreadCount(),
			}
			if handled, err := writeStructured(out, getOutput(), resp); handled {
				return err
			}
			fmt.Fprintf(out, "Added channel %d: %s\n", channel.ID, channelLabel(channel))
			fmt.Fprintf(out, "Articles: %d (%d unread)\n", resp.Articles, resp.Unread)
			return nil
		},
	}
	cmd.Flags().StringVar(&link, "link", "", "Feed URL (http or https)")
	mustMarkRequired(cmd, "link")
	return cmd
}
