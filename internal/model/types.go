package model

import "time"

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputWide  OutputFormat = "wide"
	OutputYAML  OutputFormat = "yaml"
)

// Channel is a feed as extracted from a single fetch. It is never persisted
// directly; the store reconciles it into a StoredChannel.
type Channel struct {
	Title       string    `json:"title" yaml:"title"`
	Link        string    `json:"link" yaml:"link"`
	Description string    `json:"description" yaml:"description"`
	Articles    []Article `json:"articles" yaml:"articles"`
	// Source is the URL the document was fetched from; Link is the site
	// the document advertises.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

type Article struct {
	Title       string     `json:"title" yaml:"title"`
	Link        string     `json:"link" yaml:"link"`
	Description string     `json:"description" yaml:"description"`
	PubDate     *time.Time `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`
}

type StoredChannel struct {
	ID          int64           `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Link        string          `json:"link" yaml:"link"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string          `json:"source,omitempty" yaml:"source,omitempty"`
	LastUpdate  time.Time       `json:"last_update" yaml:"last_update"`
	Articles    []StoredArticle `json:"articles" yaml:"articles"`
}

// FetchURL is where the channel is re-fetched from.
func (c StoredChannel) FetchURL() string {
	if c.Source != "" {
		return c.Source
	}
	return c.Link
}

// UnreadCount reports how many attached articles are still unread.
func (c StoredChannel) UnreadCount() int {
	n := 0
	for _, a := range c.Articles {
		if a.Unread {
			n++
		}
	}
	return n
}

type StoredArticle struct {
	ID          int64      `json:"id" yaml:"id"`
	ChannelID   int64      `json:"channel_id" yaml:"channel_id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string     `json:"link" yaml:"link"`
	PubDate     *time.Time `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`
	LastUpdate  time.Time  `json:"last_update" yaml:"last_update"`
	Unread      bool       `json:"unread" yaml:"unread"`
}

// ArticleFilter narrows GetArticlesByChannel. A zero ChannelID means every channel.
type ArticleFilter struct {
	ChannelID  int64
	UnreadOnly bool
}
