package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tengjizhang/trs/internal/model"
)

type parseState int

const (
	stateIdle parseState = iota
	stateAccumulating
	stateSkipping
)

// Channel-level containers whose children reuse the title/link/description
// names. Their subtrees are skipped so they cannot overwrite channel metadata.
var skippedContainers = map[string]struct{}{
	"image":     {},
	"textInput": {},
	"textinput": {},
}

// Parser turns a stream of events into a Channel in a single forward pass.
// At most one field accumulates text and at most one item is open at a time.
type Parser struct {
	prefix string
	state  parseState

	field FieldRef
	text  strings.Builder

	depth int

	channel model.Channel
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse drains src and returns the validated channel.
func Parse(src EventSource) (model.Channel, error) {
	p := NewParser()
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Channel{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		if err := p.Handle(ev); err != nil {
			return model.Channel{}, err
		}
	}
	return p.Finish()
}

// ParseReader parses an RSS document read from r.
func ParseReader(r io.Reader) (model.Channel, error) {
	return Parse(NewXMLSource(r))
}

func (p *Parser) Handle(ev Event) error {
	switch ev.Kind {
	case EventStart:
		return p.start(ev.Name)
	case EventEnd:
		return p.end(ev.Name)
	case EventCharacters:
		return p.characters(ev.Data)
	default:
		return nil
	}
}

// Finish checks the channel-level fields and returns the result. A document
// can be well-formed and still not describe a feed.
func (p *Parser) Finish() (model.Channel, error) {
	if p.state == stateAccumulating {
		return model.Channel{}, fmt.Errorf("%w: document ended while <%s> is still open", ErrStructure, p.field.Tag)
	}

	missing := make([]string, 0, 3)
	if p.channel.Title == "" {
		missing = append(missing, "title")
	}
	if p.channel.Link == "" {
		missing = append(missing, "link")
	}
	if p.channel.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return model.Channel{}, fmt.Errorf("%w: missing channel %s", ErrInvalidFeed, strings.Join(missing, ", "))
	}
	return p.channel, nil
}

func (p *Parser) start(tag string) error {
	if p.state == stateSkipping {
		p.depth++
		return nil
	}

	if tag == itemTag {
		p.channel.Articles = append(p.channel.Articles, model.Article{})
		p.prefix = itemPrefix
		return nil
	}

	if p.state == stateAccumulating {
		return fmt.Errorf("%w: unexpected <%s> start tag without closing existing tag <%s>", ErrStructure, tag, p.field.Tag)
	}

	if p.prefix == "" {
		if _, ok := skippedContainers[tag]; ok {
			p.state = stateSkipping
			p.depth = 1
			return nil
		}
	}

	ref, ok := Resolve(p.prefix + tag)
	if !ok {
		return nil
	}
	p.state = stateAccumulating
	p.field = ref
	p.text.Reset()
	return nil
}

func (p *Parser) end(tag string) error {
	if p.state == stateSkipping {
		p.depth--
		if p.depth == 0 {
			p.state = stateIdle
		}
		return nil
	}

	if tag == itemTag {
		if p.state == stateAccumulating {
			return fmt.Errorf("%w: unexpected </item> end tag while <%s> is still open", ErrStructure, p.field.Tag)
		}
		p.prefix = ""
		return nil
	}

	if p.state != stateAccumulating {
		return nil
	}
	if tag != p.field.Tag {
		return fmt.Errorf("%w: unexpected </%s> end tag, expected </%s>", ErrStructure, tag, p.field.Tag)
	}
	return p.commit()
}

func (p *Parser) characters(data string) error {
	if p.state != stateAccumulating {
		return nil
	}
	if p.field.Scope == ScopeArticle && len(p.channel.Articles) == 0 {
		return fmt.Errorf("%w: no item found to update field <%s>", ErrStructure, p.field.Path)
	}
	p.text.WriteString(data)
	return nil
}

func (p *Parser) commit() error {
	ref := p.field
	value := strings.TrimSpace(p.text.String())
	p.state = stateIdle
	p.text.Reset()

	if ref.Scope == ScopeChannel {
		switch ref.Field {
		case FieldTitle:
			p.channel.Title = value
		case FieldLink:
			p.channel.Link = value
		case FieldDescription:
			p.channel.Description = value
		}
		return nil
	}

	n := len(p.channel.Articles)
	if n == 0 {
		return fmt.Errorf("%w: no item found to update field <%s>", ErrStructure, ref.Path)
	}
	article := &p.channel.Articles[n-1]
	switch ref.Field {
	case FieldTitle:
		article.Title = value
	case FieldLink:
		article.Link = value
	case FieldDescription:
		article.Description = value
	case FieldPubDate:
		if value == "" {
			article.PubDate = nil
			return nil
		}
		t, err := ParseDate(value)
		if err != nil {
			return fmt.Errorf("item %d: %w", n, err)
		}
		article.PubDate = &t
	}
	return nil
}
