package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tengjizhang/trs/internal/backend"
	"github.com/tengjizhang/trs/internal/render"
)

type recorder struct {
	opened []string
	copied []string
	err    error
}

func (r *recorder) open(url string) error {
	r.opened = append(r.opened, url)
	return r.err
}

func (r *recorder) copy(text string) error {
	r.copied = append(r.copied, text)
	return r.err
}

func newTestModel(t *testing.T, opts Options) (Model, chan backend.Command, *recorder) {
	t.Helper()
	commands := make(chan backend.Command, 16)
	rec := &recorder{}
	if opts.Commands == nil {
		opts.Commands = commands
	}
	opts.Renderer = render.NewRenderer(render.StyleNoTTY)
	opts.OpenURL = rec.open
	opts.CopyText = rec.copy
	m := NewModel(opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, commands, rec
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, backendMsg{event: backend.ReloadState{Channels: sampleChannels()}})
}

func drain(commands chan backend.Command) []backend.Command {
	var out []backend.Command
	for {
		select {
		case c := <-commands:
			out = append(out, c)
		default:
			return out
		}
	}
}

func TestInitRequestsChannelList(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{})
	msg := m.Init()()
	batch, ok := msg.(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatalf("Init should batch commands, got %T", msg)
	}
	m = update(t, m, batch[0]())

	got := drain(commands)
	if len(got) != 1 {
		t.Fatalf("expected one command, got %v", got)
	}
	if _, ok := got[0].(backend.ListChannels); !ok {
		t.Fatalf("expected ListChannels, got %T", got[0])
	}
	if m.pending != 1 {
		t.Fatalf("pending = %d, want 1", m.pending)
	}
}

func TestReloadEventPopulatesView(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	view := m.View()
	if !strings.Contains(view, appTitle) {
		t.Fatalf("title missing from view:\n%s", view)
	}
	if !strings.Contains(view, "j/k to navigate channels, q to exit") {
		t.Fatalf("empty hint missing from view:\n%s", view)
	}

	m = loaded(t, m)
	view = m.View()
	for _, want := range []string{"Bryce (2)", "ploeh (1)", "Bryce (3 articles)", "Post 3"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNavigationKeys(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m = loaded(t, m)

	m = press(t, m, "j", "j")
	if m.state.Channel != 2 {
		t.Fatalf("channel = %d, want 2", m.state.Channel)
	}
	m = press(t, m, "k", "k", "l", "j", "j")
	if m.state.Focus != PaneArticles || m.state.Article != 1 {
		t.Fatalf("focus=%s article=%d", m.state.Focus, m.state.Article)
	}
	m = press(t, m, "h", "j")
	if m.state.Channel != 1 || m.state.Article != noSelection {
		t.Fatalf("empty channel should clear article: channel=%d article=%d", m.state.Channel, m.state.Article)
	}
}

func TestOpenMarksReadAndOpensLink(t *testing.T) {
	m, commands, rec := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "l", "j")

	m, cmd := updateCmd(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected an open command")
	}
	a, _ := m.state.HighlightedArticle()
	if a.Unread {
		t.Fatalf("article should be read locally right away")
	}
	got := drain(commands)
	want := backend.MarkArticleRead{ID: 11, Unread: false}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("commands = %v, want %v", got, want)
	}

	m = update(t, m, cmd())
	if len(rec.opened) != 1 || rec.opened[0] != "https://brycev.com/3" {
		t.Fatalf("opened = %v", rec.opened)
	}
	if m.status != "opened https://brycev.com/3" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestOpenFailureShowsError(t *testing.T) {
	m, _, rec := newTestModel(t, Options{})
	rec.err = errors.New("no browser")
	m = loaded(t, m)
	m = press(t, m, "l", "j")

	m, cmd := updateCmd(t, m, keyMsg("enter"))
	m = update(t, m, cmd())
	if m.err == nil || !strings.Contains(m.err.Error(), "no browser") {
		t.Fatalf("err = %v", m.err)
	}
}

func TestToggleRead(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "l", "j", "j", "j", "r")

	a, _ := m.state.HighlightedArticle()
	if a.ID != 13 || !a.Unread {
		t.Fatalf("article 13 should now be unread: %+v", a)
	}
	got := drain(commands)
	want := backend.MarkArticleRead{ID: 13, Unread: true}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestToggleReadWithoutArticleDoesNothing(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "r", "enter", "y")
	if got := drain(commands); len(got) != 0 {
		t.Fatalf("no article highlighted, got commands %v", got)
	}
}

func TestRemoveAndSyncUseHighlightedChannel(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "j", "j", "s", "d")

	got := drain(commands)
	if len(got) != 2 {
		t.Fatalf("commands = %v", got)
	}
	if got[0] != (backend.AddChannel{Link: "https://blog.ploeh.dk/rss.xml"}) {
		t.Fatalf("sync should refetch the source link, got %v", got[0])
	}
	if got[1] != (backend.RemoveChannel{ID: 3}) {
		t.Fatalf("remove = %v", got[1])
	}
	if m.pending != 2 {
		t.Fatalf("pending = %d, want 2", m.pending)
	}
}

func TestCopyLink(t *testing.T) {
	m, _, rec := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "l", "j")

	m, cmd := updateCmd(t, m, keyMsg("y"))
	m = update(t, m, cmd())
	if len(rec.copied) != 1 || rec.copied[0] != "https://brycev.com/3" {
		t.Fatalf("copied = %v", rec.copied)
	}
	if m.status != "link copied to clipboard" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestAddPopup(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{})
	m = press(t, m, "a")
	if !m.showPopup {
		t.Fatalf("popup should be open")
	}
	if view := m.View(); !strings.Contains(view, "Add channel") {
		t.Fatalf("popup missing from view:\n%s", view)
	}

	m = press(t, m, "not a link", "enter")
	if !m.showPopup || m.err == nil {
		t.Fatalf("invalid link should keep popup open with an error")
	}
	if got := drain(commands); len(got) != 0 {
		t.Fatalf("invalid link sent commands %v", got)
	}

	m = press(t, m, "esc", "a", "https://example.com/feed.xml", "enter")
	if m.showPopup {
		t.Fatalf("popup should close after submit")
	}
	got := drain(commands)
	if len(got) != 1 || got[0] != (backend.AddChannel{Link: "https://example.com/feed.xml"}) {
		t.Fatalf("commands = %v", got)
	}
}

func TestPopupKeysDoNotNavigate(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "a", "j", "q")
	if !m.showPopup || m.state.Channel != 0 {
		t.Fatalf("keys should go to the input: popup=%t channel=%d", m.showPopup, m.state.Channel)
	}
	if m.input.Value() != "jq" {
		t.Fatalf("input = %q", m.input.Value())
	}
}

func TestCommandFailedShownUntilNextKey(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = update(t, m, backendMsg{event: backend.CommandFailed{
		Command: backend.RemoveChannel{ID: 9},
		Err:     errors.New("channel 9: not found"),
	}})
	if !strings.Contains(m.View(), "channel 9: not found") {
		t.Fatalf("failure missing from view:\n%s", m.View())
	}
	if len(m.state.Channels) != 3 {
		t.Fatalf("failure must not drop the snapshot")
	}

	m = press(t, m, "j")
	if m.err != nil {
		t.Fatalf("key press should clear the error, got %v", m.err)
	}
}

func TestBusyQueueReportsError(t *testing.T) {
	m, _, _ := newTestModel(t, Options{Commands: make(chan backend.Command)})
	m = loaded(t, m)
	m = press(t, m, "d")
	if m.err == nil || !strings.Contains(m.err.Error(), "backend busy") {
		t.Fatalf("err = %v", m.err)
	}
	if m.pending != 0 {
		t.Fatalf("pending = %d, want 0", m.pending)
	}
}

func TestDebugPaneNeedsOption(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m = loaded(t, m)
	m = press(t, m, "D")
	if strings.Contains(m.View(), "last action") {
		t.Fatalf("debug pane shown without the debug option")
	}

	m, _, _ = newTestModel(t, Options{Debug: true})
	m = loaded(t, m)
	m = press(t, m, "D")
	if !strings.Contains(m.View(), "last action: D") {
		t.Fatalf("debug pane missing:\n%s", m.View())
	}
	m = press(t, m, "D")
	if strings.Contains(m.View(), "last action") {
		t.Fatalf("debug pane should toggle off")
	}
}

func TestTickRefreshesPeriodically(t *testing.T) {
	m, commands, _ := newTestModel(t, Options{Tick: time.Second, RefreshEvery: 2 * time.Second})
	m = update(t, m, tickMsg(time.Now()))
	if got := drain(commands); len(got) != 0 {
		t.Fatalf("refresh too early: %v", got)
	}
	m = update(t, m, tickMsg(time.Now()))
	got := drain(commands)
	if len(got) != 1 {
		t.Fatalf("expected a refresh, got %v", got)
	}
	if _, ok := got[0].(backend.ListChannels); !ok {
		t.Fatalf("refresh = %T", got[0])
	}
}

func TestEventsChannelDrivesSession(t *testing.T) {
	events := make(chan backend.Event, 1)
	m, _, _ := newTestModel(t, Options{Events: events})

	events <- backend.ReloadState{Channels: sampleChannels()}
	msg := waitForEvent(events)()
	m, cmd := updateCmd(t, m, msg)
	if len(m.state.Channels) != 3 || cmd == nil {
		t.Fatalf("reload not applied or listener not re-armed")
	}

	close(events)
	_, cmd = updateCmd(t, m, cmd())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("closed events should quit the session")
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	_, cmd := updateCmd(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should quit")
	}
}
