package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tengjizhang/trs/internal/model"
)

const (
	appTitle      = "Terminal RSS Reader"
	defaultWidth  = 100
	defaultHeight = 30
	dateLayout    = "2006-01-02 15:04"
	previewLines  = 12
)

func (m Model) View() string {
	width, height := m.size()

	if m.showPopup {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.renderPopup())
	}

	footer := m.renderFooter()
	bodyHeight := max(6, height-lipgloss.Height(footer))

	mainWidth := width
	var debugPane string
	if m.debugVisible() {
		debugWidth := max(24, width/5)
		mainWidth = width - debugWidth
		debugPane = m.renderDebug(debugWidth, bodyHeight)
	}

	channelsWidth := mainWidth * 2 / 5
	articlesWidth := mainWidth - channelsWidth
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderChannels(channelsWidth, bodyHeight),
		m.renderArticles(articlesWidth, bodyHeight),
	)
	if debugPane != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, debugPane)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m Model) debugVisible() bool {
	return m.debugEnabled && m.debug
}

func (m Model) paneStyle(p Pane, width, height int) lipgloss.Style {
	style := m.theme.Pane
	if m.state.Focus == p {
		style = m.theme.FocusedPane
	}
	// borders take one cell on each side
	return style.Width(max(1, width-2)).Height(max(1, height-2))
}

func (m Model) renderChannels(width, height int) string {
	inner := max(1, width-4)
	lines := []string{m.theme.PaneTitle.Render("Channels"), ""}

	if len(m.state.Channels) == 0 {
		lines = append(lines, m.theme.Hint.Render("No channels yet. Press a to add one."))
		return m.paneStyle(PaneChannels, width, height).Render(strings.Join(lines, "\n"))
	}

	rows := (height - 4) / 2
	start, end := visibleRange(m.state.Channel, len(m.state.Channels), rows)
	for i := start; i < end; i++ {
		c := m.state.Channels[i]
		title := fmt.Sprintf("%3d. %s", i+1, c.Title)
		if n := c.UnreadCount(); n > 0 {
			title += fmt.Sprintf(" (%d)", n)
		}
		meta := "   " + lastUpdateText(c)
		title, meta = truncate(title, inner), truncate(meta, inner)
		if i == m.state.Channel {
			lines = append(lines, m.theme.ActiveLine.Render(title), m.theme.ActiveLine.Render(meta))
			continue
		}
		lines = append(lines, m.theme.Unread.Render(title), m.theme.Meta.Render(meta))
	}
	return m.paneStyle(PaneChannels, width, height).Render(strings.Join(lines, "\n"))
}

func lastUpdateText(c model.StoredChannel) string {
	if len(c.Articles) > 0 && c.Articles[0].PubDate != nil {
		return "Last update: " + c.Articles[0].PubDate.Local().Format(dateLayout)
	}
	if !c.LastUpdate.IsZero() {
		return "Fetched: " + c.LastUpdate.Local().Format(dateLayout)
	}
	return ""
}

func (m Model) renderArticles(width, height int) string {
	inner := max(1, width-4)
	c, ok := m.state.HighlightedChannel()
	if !ok {
		hint := m.theme.Hint.Render("j/k to navigate channels, q to exit")
		return m.paneStyle(PaneArticles, width, height).Render(m.theme.PaneTitle.Render("Articles") + "\n\n" + hint)
	}

	header := truncate(fmt.Sprintf("%s (%d articles)", c.Title, len(c.Articles)), inner)
	lines := []string{m.theme.PaneTitle.Render(header), ""}

	preview := m.renderPreview(inner)
	listHeight := height - 4
	if preview != "" {
		listHeight -= lipgloss.Height(preview) + 1
	}

	rows := max(1, listHeight/2)
	start, end := visibleRange(m.state.Article, len(c.Articles), rows)
	for i := start; i < end; i++ {
		a := c.Articles[i]
		marker := " "
		if a.Unread {
			marker = "●"
		}
		title := truncate(fmt.Sprintf("%3d. %s %s", i+1, marker, a.Title), inner)
		meta := ""
		if a.PubDate != nil {
			meta = truncate("        Published: "+a.PubDate.Local().Format(dateLayout), inner)
		}
		switch {
		case i == m.state.Article:
			lines = append(lines, m.theme.ActiveLine.Render(title), m.theme.ActiveLine.Render(meta))
		case a.Unread:
			lines = append(lines, m.theme.Unread.Render(title), m.theme.Meta.Render(meta))
		default:
			lines = append(lines, m.theme.Read.Render(title), m.theme.Meta.Render(meta))
		}
	}
	if preview != "" {
		lines = append(lines, "", preview)
	}
	return m.paneStyle(PaneArticles, width, height).Render(strings.Join(lines, "\n"))
}

// renderPreview shows the highlighted article's description while the
// articles pane has focus.
func (m Model) renderPreview(width int) string {
	if m.state.Focus != PaneArticles {
		return ""
	}
	a, ok := m.state.HighlightedArticle()
	if !ok || strings.TrimSpace(a.Description) == "" {
		return ""
	}
	out := m.opts.Renderer.Terminal(a.Description, width)
	lines := strings.Split(out, "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], m.theme.Hint.Render("..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	title := m.theme.Title.Render(appTitle)

	var status string
	switch {
	case m.err != nil:
		status = m.theme.StatusError.Render("error: " + m.err.Error())
	case m.pending > 0:
		status = m.spinner.View() + " " + m.theme.Meta.Render(fmt.Sprintf("working (%d pending)", m.pending))
		if m.status != "" {
			status += " " + m.theme.Meta.Render(m.status)
		}
	case m.status != "":
		status = m.theme.StatusOK.Render(m.status)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", status)
	return lipgloss.JoinVertical(lipgloss.Left, top, m.help.View(m.keys))
}

func (m Model) renderDebug(width, height int) string {
	lines := []string{
		m.theme.PaneTitle.Render("Debug"),
		"last action: " + valueOr(m.lastAction, "none"),
		"focus: " + m.state.Focus.String(),
		fmt.Sprintf("channel idx: %s", indexText(m.state.Channel)),
		fmt.Sprintf("article idx: %s", indexText(m.state.Article)),
		fmt.Sprintf("channels: %d", len(m.state.Channels)),
		fmt.Sprintf("pending: %d", m.pending),
		"last event: " + valueOr(m.lastEvent, "none"),
	}
	if c, ok := m.state.HighlightedChannel(); ok {
		lines = append(lines,
			fmt.Sprintf("channel: %d %s", c.ID, c.Link),
			fmt.Sprintf("articles: %d (%d unread)", len(c.Articles), c.UnreadCount()),
			"fetched: "+c.LastUpdate.Format(time.RFC3339),
		)
	}
	if a, ok := m.state.HighlightedArticle(); ok {
		lines = append(lines, fmt.Sprintf("article: %d unread=%t", a.ID, a.Unread))
	}
	if m.err != nil {
		lines = append(lines, "last error: "+m.err.Error())
	}
	inner := max(1, width-4)
	for i := range lines {
		lines[i] = truncate(lines[i], inner)
	}
	return m.theme.Debug.Width(max(1, width-2)).Height(max(1, height-2)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPopup() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PopupHeading.Render("Add channel"),
		"",
		m.input.View(),
		"",
		m.help.ShortHelpView(m.popKey.ShortHelp()),
	)
	if m.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.theme.StatusError.Render(m.err.Error()))
	}
	return m.theme.Popup.Render(body)
}

// visibleRange returns the window of rows to draw so that selected stays in view.
func visibleRange(selected, total, rows int) (int, int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	return start, start + rows
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func indexText(i int) string {
	if i == noSelection {
		return "none"
	}
	return fmt.Sprint(i)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
