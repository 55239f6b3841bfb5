package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReadCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var id int64
	var unread bool
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Mark an article read (or unread with --unread)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if err := requirePositive("id", id); err != nil {
				return err
			}

			if err := app.service.MarkArticle(cmd.Context(), id, unread); err != nil {
				return fmt.Errorf("mark article: %w", err)
			}

			out := cmd.OutOrStdout()
			if handled, err := writeStructured(out, getOutput(), MarkArticleResponse{ArticleID: id, Unread: unread}); handled {
				return err
			}
			state := "read"
			if unread {
				state = "unread"
			}
			fmt.Fprintf(out, "Marked article %d %s\n", id, state)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Article ID")
	cmd.Flags().BoolVar(&unread, "unread", false, "Mark unread instead of read")
	mustMarkRequired(cmd, "id")
	return cmd
}
