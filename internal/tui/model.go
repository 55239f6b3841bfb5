package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tengjizhang/trs/internal/backend"
	"github.com/tengjizhang/trs/internal/ingest"
	"github.com/tengjizhang/trs/internal/render"
)

const defaultTick = 250 * time.Millisecond

// Options wires the session to a running executor.
type Options struct {
	Commands chan<- backend.Command
	Events   <-chan backend.Event
	Renderer *render.Renderer
	Logger   *slog.Logger

	Tick time.Duration
	// RefreshEvery re-requests the channel list periodically; zero disables it.
	RefreshEvery time.Duration
	// Debug allows the debug pane to be toggled.
	Debug bool

	OpenURL  func(string) error
	CopyText func(string) error
}

type tickMsg time.Time

type backendMsg struct {
	event backend.Event
}

type backendClosedMsg struct{}

type dispatchMsg struct {
	cmd backend.Command
}

type statusMsg struct {
	text string
	err  error
}

type Model struct {
	opts   Options
	theme  Theme
	keys   keyMap
	popKey popupKeyMap
	help   help.Model

	state   State
	input   textinput.Model
	spinner spinner.Model

	showPopup    bool
	debugEnabled bool
	debug        bool
	pending      int
	sinceRefresh time.Duration

	lastAction string
	lastEvent  string
	status     string
	err        error

	width  int
	height int
}

func NewModel(opts Options) Model {
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewRenderer(render.StyleDark)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = openURLInBrowser
	}
	if opts.CopyText == nil {
		opts.CopyText = clipboard.WriteAll
	}

	theme := DefaultTheme()
	keys := newKeyMap()

	ti := textinput.New()
	ti.Placeholder = "https://example.com/index.xml"
	ti.Prompt = "link: "
	ti.CharLimit = 2048
	ti.Width = 60

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = theme.Spinner

	return Model{
		opts:         opts,
		theme:        theme,
		keys:         keys,
		popKey:       popupKeyMap{submit: keys.popupSubmit, close: keys.popupClose},
		help:         help.New(),
		state:        NewState(),
		input:        ti,
		spinner:      s,
		debugEnabled: opts.Debug,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		dispatch(backend.ListChannels{}),
		waitForEvent(m.opts.Events),
		tick(m.opts.Tick),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(20, min(80, msg.Width-20))
		return m, nil

	case tickMsg:
		return m.handleTick()

	case backendMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.opts.Events)

	case backendClosedMsg:
		m.opts.Logger.Info("backend closed, leaving session")
		return m, tea.Quit

	case dispatchMsg:
		m.send(msg.cmd)
		return m, nil

	case statusMsg:
		m.status = msg.text
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.showPopup {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.showPopup {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.spinner, _ = m.spinner.Update(spinner.TickMsg{ID: m.spinner.ID()})
	}
	if m.opts.RefreshEvery > 0 {
		m.sinceRefresh += m.opts.Tick
		if m.sinceRefresh >= m.opts.RefreshEvery {
			m.sinceRefresh = 0
			m.send(backend.ListChannels{})
		}
	}
	return m, tick(m.opts.Tick)
}

func (m *Model) handleEvent(ev backend.Event) {
	if m.pending > 0 {
		m.pending--
	}
	switch ev := ev.(type) {
	case backend.ReloadState:
		m.state.Reload(ev.Channels)
		m.err = nil
		m.lastEvent = fmt.Sprintf("reload (%d channels)", len(ev.Channels))
	case backend.CommandFailed:
		m.err = ev
		m.status = ""
		m.lastEvent = "failed: " + ev.Command.String()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastAction = msg.String()
	m.err = nil
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.left):
		m.state.FocusChannels()
	case key.Matches(msg, m.keys.right):
		m.state.FocusArticles()
	case key.Matches(msg, m.keys.down):
		m.state.MoveDown()
	case key.Matches(msg, m.keys.up):
		m.state.MoveUp()
	case key.Matches(msg, m.keys.toggleDebug):
		m.debug = !m.debug
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.add):
		m.showPopup = true
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.remove):
		if c, ok := m.state.HighlightedChannel(); ok {
			m.send(backend.RemoveChannel{ID: c.ID})
		}
	case key.Matches(msg, m.keys.sync):
		if c, ok := m.state.HighlightedChannel(); ok {
			m.send(backend.AddChannel{Link: c.FetchURL()})
			m.status = "syncing " + c.Title
		}
	case key.Matches(msg, m.keys.toggleRead):
		if a, ok := m.state.HighlightedArticle(); ok {
			m.state.SetUnread(a.ID, !a.Unread)
			m.send(backend.MarkArticleRead{ID: a.ID, Unread: !a.Unread})
		}
	case key.Matches(msg, m.keys.open):
		if a, ok := m.state.HighlightedArticle(); ok {
			m.state.SetUnread(a.ID, false)
			m.send(backend.MarkArticleRead{ID: a.ID, Unread: false})
			return m, openURLCmd(a.Link, m.opts.OpenURL)
		}
	case key.Matches(msg, m.keys.copyLink):
		if a, ok := m.state.HighlightedArticle(); ok {
			return m, copyCmd(a.Link, m.opts.CopyText)
		}
	}
	return m, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.popupClose):
		m.closePopup()
		return m, nil
	case key.Matches(msg, m.keys.popupSubmit):
		link := strings.TrimSpace(m.input.Value())
		if err := ingest.ValidateLink(link); err != nil {
			m.err = err
			return m, nil
		}
		m.closePopup()
		m.send(backend.AddChannel{Link: link})
		m.status = "adding " + link
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePopup() {
	m.showPopup = false
	m.input.Blur()
	m.input.Reset()
	m.err = nil
}

// send hands a command to the executor without blocking the loop.
func (m *Model) send(cmd backend.Command) {
	if m.opts.Commands == nil {
		return
	}
	select {
	case m.opts.Commands <- cmd:
		m.pending++
		m.opts.Logger.Debug("command sent", "command", cmd.String())
	default:
		m.err = fmt.Errorf("backend busy, dropped: %s", cmd)
		m.opts.Logger.Warn("command queue full", "command", cmd.String())
	}
}

func dispatch(cmd backend.Command) tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg{cmd: cmd}
	}
}

func waitForEvent(events <-chan backend.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return backendClosedMsg{}
		}
		return backendMsg{event: ev}
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func openURLCmd(url string, openFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := openFn(url); err != nil {
			return statusMsg{err: fmt.Errorf("open %s: %w", url, err)}
		}
		return statusMsg{text: "opened " + url}
	}
}

func copyCmd(text string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return statusMsg{err: fmt.Errorf("copy link: %w", err)}
		}
		return statusMsg{text: "link copied to clipboard"}
	}
}
