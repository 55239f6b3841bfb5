package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/trs/internal/model"
)

func newArticlesCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var filter model.ArticleFilter
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List articles grouped by channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			channels, err := app.service.GetArticlesByChannel(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}

			out := cmd.OutOrStdout()
			if handled, err := writeStructured(out, getOutput(), channels); handled {
				return err
			}
			writeArticlesTable(out, channels, app.renderer, getOutput() == OutputWide)
			return nil
		},
	}
	cmd.Flags().Int64Var(&filter.ChannelID, "channel-id", 0, "Only this channel's articles")
	cmd.Flags().BoolVar(&filter.UnreadOnly, "unread", false, "Only unread articles")
	return cmd
}
