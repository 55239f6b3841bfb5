package parser

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventCharacters
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventCharacters:
		return "characters"
	default:
		return "unknown"
	}
}

// Event is one step of the XML stream. Name is set for start and end events,
// Data for character events.
type Event struct {
	Kind EventKind
	Name string
	Data string
}

// EventSource yields events until it returns io.EOF. Any other error aborts
// the parse.
type EventSource interface {
	Next() (Event, error)
}

// isRSSNamespace reports namespaces treated as unqualified, so RSS 1.0 / RDF
// documents, which declare a default namespace, route the same way as RSS 2.0.
func isRSSNamespace(space string) bool {
	switch space {
	case "", "http://purl.org/rss/1.0/", "http://my.netscape.com/rdf/simple/0.9/", "http://backend.userland.com/rss2":
		return true
	}
	return false
}

type xmlSource struct {
	dec *xml.Decoder
}

// NewXMLSource streams events from r without building a document tree.
// Encodings other than UTF-8 are decoded through x/net/html/charset.
func NewXMLSource(r io.Reader) EventSource {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity
	return &xmlSource{dec: dec}
}

func (s *xmlSource) Next() (Event, error) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return Event{Kind: EventStart, Name: tagName(t.Name)}, nil
		case xml.EndElement:
			return Event{Kind: EventEnd, Name: tagName(t.Name)}, nil
		case xml.CharData:
			return Event{Kind: EventCharacters, Data: string(t)}, nil
		}
	}
}

func tagName(n xml.Name) string {
	if isRSSNamespace(n.Space) {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// SliceSource replays a fixed list of events. It is useful when the events are
// produced by something other than an XML decoder.
type SliceSource struct {
	events []Event
	pos    int
}

func NewSliceSource(events ...Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
