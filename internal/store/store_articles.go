package store

import (
	"context"
	"fmt"

	"github.com/tengjizhang/trs/internal/model"
)

// GetArticle looks an article up by its link, the natural key.
func (s *Store) GetArticle(ctx context.Context, link string) (model.StoredArticle, error) {
	return getArticle(ctx, s.db, link)
}

func (s *Store) GetArticleByID(ctx context.Context, id int64) (model.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if err != nil {
		return model.StoredArticle{}, wrapNotFound(fmt.Sprintf("article %d", id), err)
	}
	return a, nil
}

func getArticle(ctx context.Context, q querier, link string) (model.StoredArticle, error) {
	row := q.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE link = ?`, link)
	a, err := scanArticle(row)
	if err != nil {
		return model.StoredArticle{}, wrapNotFound("article "+link, err)
	}
	return a, nil
}

// ListArticles returns articles across channels, newest first.
func (s *Store) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.StoredArticle, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1 = 1`
	args := make([]any, 0, 2)
	if filter.ChannelID > 0 {
		query += ` AND channel_id = ?`
		args = append(args, filter.ChannelID)
	}
	if filter.UnreadOnly {
		query += ` AND unread = 1`
	}
	query += ` ORDER BY ` + articleOrder

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list articles", err)
	}
	articles, err := scanArticles(rows)
	if err != nil {
		return nil, storageErr("scan articles", err)
	}
	return articles, nil
}

func (s *Store) MarkArticleRead(ctx context.Context, id int64) error {
	return s.setUnread(ctx, id, false)
}

func (s *Store) MarkArticleUnread(ctx context.Context, id int64) error {
	return s.setUnread(ctx, id, true)
}

func (s *Store) setUnread(ctx context.Context, id int64, unread bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE articles SET unread = ? WHERE id = ?`, unread, id)
	if err != nil {
		return storageErr("update article", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update article", err)
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return nil
}
