package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tengjizhang/trs/internal/model"
	"github.com/tengjizhang/trs/internal/render"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured handles the machine-readable formats. It reports false for
// table and wide, which each command renders itself.
func writeStructured(out io.Writer, format OutputFormat, v any) (bool, error) {
	switch format {
	case OutputJSON:
		return true, writeJSON(out, v)
	case OutputYAML:
		return true, writeYAML(out, v)
	}
	return false, nil
}

func writeChannelsTable(out io.Writer, channels []model.StoredChannel, wide bool) {
	now := time.Now()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tTITLE\tUNREAD\tTOTAL\tLAST_UPDATE\tLINK\tSOURCE\tDESCRIPTION")
		for _, c := range channels {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
				c.ID,
				render.CompactText(channelLabel(c), 30),
				c.UnreadCount(),
				len(c.Articles),
				updatedAgo(c.LastUpdate, now),
				render.CompactText(c.Link, 46),
				render.CompactText(c.FetchURL(), 46),
				render.CompactText(oneLine(c.Description), 60),
			)
		}
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tUNREAD\tTOTAL\tLAST_UPDATE\tLINK")
		for _, c := range channels {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%d\t%d\t%s\t%s\n",
				c.ID,
				render.CompactText(channelLabel(c), 30),
				c.UnreadCount(),
				len(c.Articles),
				updatedAgo(c.LastUpdate, now),
				render.CompactText(c.Link, 56),
			)
		}
	}
	_ = tw.Flush()
}

func writeArticlesTable(out io.Writer, channels []model.StoredChannel, r *render.Renderer, wide bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tCHANNEL_ID\tCHANNEL\tTITLE\tDATE\tSTATE\tLINK\tSUMMARY")
		for _, c := range channels {
			for _, a := range c.Articles {
				fmt.Fprintf(
					tw,
					"%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					a.ID,
					c.ID,
					render.CompactText(channelLabel(c), 24),
					render.CompactText(displayArticleTitle(a), 56),
					pubDay(a.PubDate),
					articleState(a.Unread),
					render.CompactText(a.Link, 48),
					r.Summary(a.Description),
				)
			}
		}
	} else {
		fmt.Fprintln(tw, "ID\tCHANNEL\tTITLE\tDATE\tSTATE")
		for _, c := range channels {
			for _, a := range c.Articles {
				fmt.Fprintf(
					tw,
					"%d\t%s\t%s\t%s\t%s\n",
					a.ID,
					render.CompactText(channelLabel(c), 24),
					render.CompactText(displayArticleTitle(a), 56),
					pubDay(a.PubDate),
					articleState(a.Unread),
				)
			}
		}
	}
	_ = tw.Flush()
}

func oneLine(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.TrimSpace(v)
}

func displayArticleTitle(a model.StoredArticle) string {
	if strings.TrimSpace(a.Title) != "" {
		return a.Title
	}
	if strings.TrimSpace(a.Link) != "" {
		return a.Link
	}
	return "(untitled)"
}
