package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/tengjizhang/trs/internal/model"
)

// channelLabel is the title shown for a channel, its link when untitled.
func channelLabel(c model.StoredChannel) string {
	if strings.TrimSpace(c.Title) == "" {
		return c.Link
	}
	return c.Title
}

func articleState(unread bool) string {
	if unread {
		return "unread"
	}
	return "read"
}

// pubDay prints the publication day, or "-" for undated articles.
func pubDay(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// updatedAgo describes how long before now a channel was last refreshed.
func updatedAgo(last, now time.Time) string {
	if last.IsZero() {
		return "never"
	}
	d := now.Sub(last)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}
