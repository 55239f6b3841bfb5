package render

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// StyleDark and StyleNoTTY name glamour's standard styles.
	StyleDark  = "dark"
	StyleNoTTY = "notty"

	defaultCacheSize = 256
	summaryMax       = 280
	ellipsis         = "..."
)

var wsRegexp = regexp.MustCompile(`\s+`)

type cacheKey struct {
	width  int
	source string
}

// Renderer turns article description HTML into Markdown and into ANSI text
// for the terminal. Terminal output is cached by width and source because the
// UI redraws on every tick.
type Renderer struct {
	converter *markdown.Converter
	style     string
	cache     *lru.Cache[cacheKey, string]

	mu    sync.Mutex
	terms map[int]*glamour.TermRenderer
}

func NewRenderer(style string) *Renderer {
	if style == "" {
		style = StyleDark
	}
	cache, err := lru.New[cacheKey, string](defaultCacheSize)
	if err != nil {
		panic(fmt.Sprintf("render: lru cache: %v", err))
	}
	return &Renderer{
		converter: markdown.NewConverter("", true, nil),
		style:     style,
		cache:     cache,
		terms:     make(map[int]*glamour.TermRenderer),
	}
}

// HTMLToMarkdown sanitizes and converts an HTML fragment. On conversion
// failure the whitespace-compacted input is returned.
func (r *Renderer) HTMLToMarkdown(raw string) string {
	raw = SanitizeHTML(raw)
	if raw == "" {
		return ""
	}
	out, err := r.converter.ConvertString(raw)
	if err != nil {
		return CompactText(raw, 4000)
	}
	return strings.TrimSpace(out)
}

// Summary is a single-line plain rendering of a description.
func (r *Renderer) Summary(raw string) string {
	return CompactText(r.HTMLToMarkdown(raw), summaryMax)
}

// Terminal renders a description for a pane of the given width.
func (r *Renderer) Terminal(raw string, width int) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	key := cacheKey{width: width, source: raw}
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	md := r.HTMLToMarkdown(raw)
	out := md
	if term, err := r.termRenderer(width); err == nil {
		if rendered, err := term.Render(md); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	r.cache.Add(key, out)
	return out
}

func (r *Renderer) termRenderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if term, ok := r.terms[width]; ok {
		return term, nil
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.terms[width] = term
	return term, nil
}

// CompactText collapses whitespace and cuts v to at most max terminal cells,
// ending in "..." when cut. A max of zero or less only collapses whitespace.
func CompactText(v string, max int) string {
	v = strings.TrimSpace(wsRegexp.ReplaceAllString(v, " "))
	if max <= 0 || lipgloss.Width(v) <= max {
		return v
	}

	limit := max - len(ellipsis)
	var b strings.Builder
	width := 0
	for _, r := range v {
		w := lipgloss.Width(string(r))
		if width+w > limit {
			break
		}
		b.WriteRune(r)
		width += w
	}
	return b.String() + ellipsis
}
