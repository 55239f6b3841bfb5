package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tengjizhang/trs/internal/model"
)

// AddChannel upserts the channel by link and every article by link in one
// transaction. Re-adding a known article refreshes pub_date and last_update
// only; its unread flag belongs to the user. The returned channel carries the
// articles of this document, read back after their upsert.
func (s *Store) AddChannel(ctx context.Context, channel model.Channel) (stored model.StoredChannel, err error) {
	if strings.TrimSpace(channel.Link) == "" {
		return model.StoredChannel{}, fmt.Errorf("%w: channel link must not be empty", ErrInvalidInput)
	}
	for i, a := range channel.Articles {
		if strings.TrimSpace(a.Link) == "" {
			return model.StoredChannel{}, fmt.Errorf("%w: article %d has no link", ErrInvalidInput, i+1)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.StoredChannel{}, storageErr("begin add channel", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := nowDBString()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO channels (name, link, description, source, last_update)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			source = CASE WHEN excluded.source = '' THEN channels.source ELSE excluded.source END,
			last_update = excluded.last_update
	`, channel.Title, channel.Link, channel.Description, channel.Source, now); err != nil {
		return model.StoredChannel{}, storageErr("upsert channel", err)
	}

	stored, err = getChannel(ctx, tx, channel.Link)
	if err != nil {
		return model.StoredChannel{}, fmt.Errorf("read back channel: %w", err)
	}

	stored.Articles = make([]model.StoredArticle, 0, len(channel.Articles))
	seen := make(map[string]struct{}, len(channel.Articles))
	for _, a := range channel.Articles {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO articles (channel_id, title, description, link, pub_date, last_update, unread)
			VALUES (?, ?, ?, ?, ?, ?, 1)
			ON CONFLICT(link) DO UPDATE SET
				pub_date = excluded.pub_date,
				last_update = excluded.last_update
		`, stored.ID, a.Title, a.Description, a.Link, timeToDBString(a.PubDate), now); err != nil {
			return model.StoredChannel{}, storageErr("upsert article "+a.Link, err)
		}
		if _, dup := seen[a.Link]; dup {
			continue
		}
		seen[a.Link] = struct{}{}
		var row model.StoredArticle
		if row, err = getArticle(ctx, tx, a.Link); err != nil {
			return model.StoredChannel{}, fmt.Errorf("read back article: %w", err)
		}
		stored.Articles = append(stored.Articles, row)
	}
	sortArticles(stored.Articles)

	if err = tx.Commit(); err != nil {
		return model.StoredChannel{}, storageErr("commit add channel", err)
	}
	return stored, nil
}

// GetChannel looks a channel up by its link and attaches its articles.
func (s *Store) GetChannel(ctx context.Context, link string) (model.StoredChannel, error) {
	channel, err := getChannel(ctx, s.db, link)
	if err != nil {
		return model.StoredChannel{}, err
	}
	if channel.Articles, err = listArticlesByChannel(ctx, s.db, channel.ID); err != nil {
		return model.StoredChannel{}, err
	}
	return channel, nil
}

// RemoveChannel deletes the channel; its articles go with it through the
// cascading foreign key.
func (s *Store) RemoveChannel(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return 0, storageErr("remove channel", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("remove channel", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("channel %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// ListChannels returns channels in id order with their articles attached. A
// limit of zero or less returns every channel; the limit never bounds articles.
func (s *Store) ListChannels(ctx context.Context, limit int) (channels []model.StoredChannel, err error) {
	if limit <= 0 {
		limit = -1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin list channels", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, storageErr("list channels", err)
	}
	channels = make([]model.StoredChannel, 0)
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			_ = rows.Close()
			return nil, storageErr("scan channel", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, storageErr("list channels", err)
	}
	_ = rows.Close()
	if len(channels) == 0 {
		return channels, nil
	}

	articleRows, err := tx.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE channel_id IN (SELECT id FROM channels ORDER BY id LIMIT ?)
		ORDER BY channel_id, `+articleOrder, limit)
	if err != nil {
		return nil, storageErr("list articles", err)
	}
	articles, err := scanArticles(articleRows)
	if err != nil {
		return nil, storageErr("scan articles", err)
	}

	grouped := groupArticles(articles)
	for i := range channels {
		if list, ok := grouped[channels[i].ID]; ok {
			channels[i].Articles = list
		}
	}
	return channels, nil
}

// sortArticles applies articleOrder: newest first, undated last, then by id.
func sortArticles(articles []model.StoredArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch {
		case a.PubDate == nil && b.PubDate == nil:
			return a.ID > b.ID
		case a.PubDate == nil:
			return false
		case b.PubDate == nil:
			return true
		case !a.PubDate.Equal(*b.PubDate):
			return a.PubDate.After(*b.PubDate)
		}
		return a.ID > b.ID
	})
}

// groupArticles buckets articles by channel in one pass, keeping their order.
func groupArticles(articles []model.StoredArticle) map[int64][]model.StoredArticle {
	grouped := make(map[int64][]model.StoredArticle)
	for _, a := range articles {
		grouped[a.ChannelID] = append(grouped[a.ChannelID], a)
	}
	return grouped
}

func getChannel(ctx context.Context, q querier, link string) (model.StoredChannel, error) {
	row := q.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE link = ?`, link)
	channel, err := scanChannel(row)
	if err != nil {
		return model.StoredChannel{}, wrapNotFound("channel "+link, err)
	}
	return channel, nil
}

func listArticlesByChannel(ctx context.Context, q querier, channelID int64) ([]model.StoredArticle, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE channel_id = ? ORDER BY `+articleOrder, channelID)
	if err != nil {
		return nil, storageErr("list channel articles", err)
	}
	articles, err := scanArticles(rows)
	if err != nil {
		return nil, storageErr("scan channel articles", err)
	}
	return articles, nil
}
