package cli

import "github.com/tengjizhang/trs/internal/model"

type AddChannelResponse struct {
	Channel  model.StoredChannel `json:"channel" yaml:"channel"`
	Articles int                 `json:"articles" yaml:"articles"`
	Unread   int                 `json:"unread" yaml:"unread"`
}

type RemoveChannelResponse struct {
	RemovedChannelID int64 `json:"removed_channel_id" yaml:"removed_channel_id"`
}

type MarkArticleResponse struct {
	ArticleID int64 `json:"article_id" yaml:"article_id"`
	Unread    bool  `json:"unread" yaml:"unread"`
}
