package tui

import "github.com/tengjizhang/trs/internal/model"

type Pane int

const (
	PaneChannels Pane = iota
	PaneArticles
)

func (p Pane) String() string {
	if p == PaneArticles {
		return "articles"
	}
	return "channels"
}

// noSelection marks an index with nothing highlighted.
const noSelection = -1

// State is the navigable part of the session: the latest snapshot plus the
// focus and the two selection indices. The article index always refers to
// the highlighted channel's articles.
type State struct {
	Channels []model.StoredChannel
	Focus    Pane
	Channel  int
	Article  int
}

func NewState() State {
	return State{Focus: PaneChannels, Channel: noSelection, Article: noSelection}
}

// Reload swaps in a new snapshot, following the highlighted channel by id
// when it survived and re-clamping both indices otherwise.
func (s *State) Reload(channels []model.StoredChannel) {
	prevID := int64(0)
	if c, ok := s.HighlightedChannel(); ok {
		prevID = c.ID
	}
	s.Channels = channels

	switch {
	case len(channels) == 0:
		s.Channel = noSelection
	case prevID != 0 && s.indexOf(prevID) >= 0:
		s.Channel = s.indexOf(prevID)
	case s.Channel == noSelection:
		s.Channel = 0
	case s.Channel >= len(channels):
		s.Channel = len(channels) - 1
	}
	s.clampArticle()
}

func (s State) indexOf(id int64) int {
	for i, c := range s.Channels {
		if c.ID == id {
			return i
		}
	}
	return noSelection
}

func (s *State) FocusChannels() { s.Focus = PaneChannels }
func (s *State) FocusArticles() { s.Focus = PaneArticles }

func (s *State) MoveDown() {
	if s.Focus == PaneChannels {
		s.nextChannel()
		return
	}
	s.nextArticle()
}

func (s *State) MoveUp() {
	if s.Focus == PaneChannels {
		s.prevChannel()
		return
	}
	s.prevArticle()
}

func (s *State) nextChannel() {
	if len(s.Channels) == 0 {
		s.Channel = noSelection
		return
	}
	if s.Channel == noSelection {
		s.Channel = 0
	} else {
		s.Channel = min(s.Channel+1, len(s.Channels)-1)
	}
	s.clampArticle()
}

func (s *State) prevChannel() {
	if s.Channel == noSelection {
		return
	}
	s.Channel = max(s.Channel-1, 0)
	s.clampArticle()
}

func (s *State) nextArticle() {
	c, ok := s.HighlightedChannel()
	if !ok {
		return
	}
	if len(c.Articles) == 0 {
		s.Article = noSelection
		return
	}
	if s.Article == noSelection {
		s.Article = 0
		return
	}
	s.Article = min(s.Article+1, len(c.Articles)-1)
}

func (s *State) prevArticle() {
	if s.Article == noSelection {
		return
	}
	s.Article = max(s.Article-1, 0)
}

// clampArticle keeps the article index inside the highlighted channel, or
// clears it when that channel has no articles.
func (s *State) clampArticle() {
	if s.Article == noSelection {
		return
	}
	c, ok := s.HighlightedChannel()
	if !ok || len(c.Articles) == 0 {
		s.Article = noSelection
		return
	}
	if s.Article > len(c.Articles)-1 {
		s.Article = len(c.Articles) - 1
	}
}

func (s State) HighlightedChannel() (model.StoredChannel, bool) {
	if s.Channel < 0 || s.Channel >= len(s.Channels) {
		return model.StoredChannel{}, false
	}
	return s.Channels[s.Channel], true
}

func (s State) HighlightedArticle() (model.StoredArticle, bool) {
	c, ok := s.HighlightedChannel()
	if !ok || s.Article < 0 || s.Article >= len(c.Articles) {
		return model.StoredArticle{}, false
	}
	return c.Articles[s.Article], true
}

// SetUnread flips the local copy of an article ahead of the backend snapshot.
func (s *State) SetUnread(articleID int64, unread bool) {
	for i := range s.Channels {
		articles := s.Channels[i].Articles
		for j := range articles {
			if articles[j].ID == articleID {
				// copy so the snapshot handed over by the executor is untouched
				channels := make([]model.StoredChannel, len(s.Channels))
				copy(channels, s.Channels)
				updated := make([]model.StoredArticle, len(articles))
				copy(updated, articles)
				updated[j].Unread = unread
				channels[i].Articles = updated
				s.Channels = channels
				return
			}
		}
	}
}
