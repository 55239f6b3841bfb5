package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tengjizhang/trs/internal/model"
	"github.com/tengjizhang/trs/internal/parser"
	"github.com/tengjizhang/trs/internal/store"
)

// Store is the persistence the use-cases compose over.
type Store interface {
	AddChannel(ctx context.Context, channel model.Channel) (model.StoredChannel, error)
	RemoveChannel(ctx context.Context, id int64) (int64, error)
	ListChannels(ctx context.Context, limit int) ([]model.StoredChannel, error)
	MarkArticleRead(ctx context.Context, id int64) error
	MarkArticleUnread(ctx context.Context, id int64) error
}

type Fetcher interface {
	Fetch(ctx context.Context, link string) ([]byte, error)
}

type Service struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
}

func NewService(s Store, f Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: s, fetcher: f, logger: logger}
}

// AddChannel fetches and parses the document at link and only then persists
// it, so a failure at any stage leaves the database untouched.
func (s *Service) AddChannel(ctx context.Context, link string) (model.StoredChannel, error) {
	link = strings.TrimSpace(link)
	if err := ValidateLink(link); err != nil {
		return model.StoredChannel{}, err
	}

	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return model.StoredChannel{}, fmt.Errorf("fetch channel: %w", err)
	}

	channel, err := parser.ParseDocument(body)
	if err != nil {
		return model.StoredChannel{}, fmt.Errorf("parse %s: %w", link, err)
	}
	channel.Source = link
	channel.Articles = s.dropLinkless(link, channel.Articles)

	stored, err := s.store.AddChannel(ctx, channel)
	if err != nil {
		return model.StoredChannel{}, fmt.Errorf("store channel: %w", err)
	}
	s.logger.Info("channel added", "link", stored.Link, "id", stored.ID, "articles", len(stored.Articles))
	return stored, nil
}

func (s *Service) dropLinkless(source string, articles []model.Article) []model.Article {
	kept := articles[:0]
	for _, a := range articles {
		if strings.TrimSpace(a.Link) == "" {
			s.logger.Warn("skipping article without link", "channel", source, "title", a.Title)
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func (s *Service) RemoveChannel(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("%w: channel id must be positive", store.ErrInvalidInput)
	}
	return s.store.RemoveChannel(ctx, id)
}

// MarkArticle sets the unread flag of one article.
func (s *Service) MarkArticle(ctx context.Context, id int64, unread bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: article id must be positive", store.ErrInvalidInput)
	}
	if unread {
		return s.store.MarkArticleUnread(ctx, id)
	}
	return s.store.MarkArticleRead(ctx, id)
}

func (s *Service) ListChannels(ctx context.Context, limit int) ([]model.StoredChannel, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", store.ErrInvalidInput)
	}
	return s.store.ListChannels(ctx, limit)
}

// GetArticlesByChannel composes over ListChannels: every channel is read,
// then narrowed to filter.ChannelID when set, and each channel's articles to
// unread ones when requested.
func (s *Service) GetArticlesByChannel(ctx context.Context, filter model.ArticleFilter) ([]model.StoredChannel, error) {
	if filter.ChannelID < 0 {
		return nil, fmt.Errorf("%w: channel id must not be negative", store.ErrInvalidInput)
	}
	channels, err := s.store.ListChannels(ctx, 0)
	if err != nil {
		return nil, err
	}

	out := make([]model.StoredChannel, 0, len(channels))
	for _, c := range channels {
		if filter.ChannelID != 0 && c.ID != filter.ChannelID {
			continue
		}
		if filter.UnreadOnly {
			unread := make([]model.StoredArticle, 0, len(c.Articles))
			for _, a := range c.Articles {
				if a.Unread {
					unread = append(unread, a)
				}
			}
			c.Articles = unread
		}
		out = append(out, c)
	}
	if filter.ChannelID != 0 && len(out) == 0 {
		return nil, fmt.Errorf("channel %d: %w", filter.ChannelID, store.ErrNotFound)
	}
	return out, nil
}

// ValidateLink accepts absolute http and https URLs with a host.
func ValidateLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("%w: link must not be empty", store.ErrInvalidInput)
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: link %q: %w", store.ErrInvalidInput, link, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: link %q must use http or https", store.ErrInvalidInput, link)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: link %q has no host", store.ErrInvalidInput, link)
	}
	return nil
}
