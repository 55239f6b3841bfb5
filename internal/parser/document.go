package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tengjizhang/trs/internal/model"
)

type Format string

const (
	FormatUnknown Format = "unknown"
	FormatRSS     Format = "rss"
	FormatAtom    Format = "atom"
	FormatJSON    Format = "json"
)

// DetectFormat sniffs the document type without parsing it.
func DetectFormat(data []byte) Format {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		return FormatRSS
	case gofeed.FeedTypeAtom:
		return FormatAtom
	case gofeed.FeedTypeJSON:
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// ParseDocument parses a fetched body. RSS and unrecognised documents go
// through the streaming tag-path parser; Atom and JSON Feed are translated by
// gofeed into the same Channel shape and validated the same way.
func ParseDocument(data []byte) (model.Channel, error) {
	switch DetectFormat(data) {
	case FormatAtom, FormatJSON:
		return parseWithGofeed(data)
	default:
		return ParseReader(bytes.NewReader(data))
	}
}

func parseWithGofeed(data []byte) (model.Channel, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return model.Channel{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	p := NewParser()
	p.channel = model.Channel{
		Title:       strings.TrimSpace(feed.Title),
		Link:        firstNonEmpty(feed.Link, firstOf(feed.Links), feed.FeedLink),
		Description: strings.TrimSpace(feed.Description),
		Articles:    make([]model.Article, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		description := strings.TrimSpace(item.Description)
		if description == "" {
			description = strings.TrimSpace(item.Content)
		}
		p.channel.Articles = append(p.channel.Articles, model.Article{
			Title:       strings.TrimSpace(item.Title),
			Link:        firstNonEmpty(item.Link, firstOf(item.Links)),
			Description: description,
			PubDate:     itemDate(item),
		})
	}
	return p.Finish()
}

func itemDate(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		return &t
	}
	if item.UpdatedParsed != nil {
		t := *item.UpdatedParsed
		return &t
	}
	return nil
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
