package store

import (
	"context"
	"database/sql"

	"github.com/tengjizhang/trs/internal/model"
)

// Store owns every persisted channel and article row.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx so read-back helpers can
// run inside the upsert transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const channelColumns = `id, name, link, description, source, last_update`

const articleColumns = `id, channel_id, title, description, link, pub_date, last_update, unread`

// articleOrder puts the most recent publication first and undated articles last.
const articleOrder = `CASE WHEN pub_date IS NULL OR pub_date = '' THEN 1 ELSE 0 END, pub_date DESC, id DESC`

func scanChannel(scanner rowScanner) (model.StoredChannel, error) {
	var c model.StoredChannel
	var desc sql.NullString
	var lastUpdate string
	if err := scanner.Scan(&c.ID, &c.Title, &c.Link, &desc, &c.Source, &lastUpdate); err != nil {
		return model.StoredChannel{}, err
	}
	c.Description = desc.String
	if t, err := parseDBTime(lastUpdate); err == nil {
		c.LastUpdate = t
	}
	c.Articles = make([]model.StoredArticle, 0)
	return c, nil
}

func scanArticle(scanner rowScanner) (model.StoredArticle, error) {
	var a model.StoredArticle
	var desc, pubDate sql.NullString
	var lastUpdate string
	if err := scanner.Scan(
		&a.ID,
		&a.ChannelID,
		&a.Title,
		&desc,
		&a.Link,
		&pubDate,
		&lastUpdate,
		&a.Unread,
	); err != nil {
		return model.StoredArticle{}, err
	}
	a.Description = desc.String
	if pubDate.Valid {
		if t, err := parseDBTime(pubDate.String); err == nil {
			a.PubDate = &t
		}
	}
	if t, err := parseDBTime(lastUpdate); err == nil {
		a.LastUpdate = t
	}
	return a, nil
}

func scanArticles(rows *sql.Rows) ([]model.StoredArticle, error) {
	defer rows.Close()
	articles := make([]model.StoredArticle, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
