package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/tengjizhang/trs/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "trs.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewStore(db)
}

// sampleChannel builds a channel with n dated articles; article i is
// published i days after the base date.
func sampleChannel(link string, n int) model.Channel {
	base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	c := model.Channel{
		Title:       "Channel " + link,
		Link:        link,
		Description: "about " + link,
	}
	for i := 1; i <= n; i++ {
		pub := base.AddDate(0, 0, i)
		c.Articles = append(c.Articles, model.Article{
			Title:       fmt.Sprintf("Post %d", i),
			Link:        fmt.Sprintf("%sposts/%d/", link, i),
			Description: fmt.Sprintf("<p>body %d</p>", i),
			PubDate:     &pub,
		})
	}
	return c
}

func mustAddChannel(t *testing.T, s *Store, c model.Channel) model.StoredChannel {
	t.Helper()
	stored, err := s.AddChannel(context.Background(), c)
	if err != nil {
		t.Fatalf("add channel %s: %v", c.Link, err)
	}
	return stored
}
