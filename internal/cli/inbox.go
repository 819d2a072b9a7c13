package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type inboxKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Read    key.Binding
	ReadAll key.Binding
	Unread  key.Binding
	Mine    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k inboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Read, k.ReadAll, k.Unread, k.Mine, k.Refresh, k.Quit}
}

func (k inboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var inboxKeys = inboxKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Read:    key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "mark read")),
	ReadAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read")),
	Unread:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unread only")),
	Mine:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "hide announcements")),
	Refresh: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// inboxLoadedMsg carries a fresh page of notifications and the badge counts.
type inboxLoadedMsg struct {
	items  []*domain.Notification
	counts domain.UnreadCounts
	err    error
}

// inboxMarkedMsg reports a mark-read action.
type inboxMarkedMsg struct {
	n   int
	err error
}

// inboxModel lists a user's notifications and marks them read.
type inboxModel struct {
	ctx    context.Context
	app    *App
	userID string

	items   []*domain.Notification
	counts  domain.UnreadCounts
	filter  repository.NotificationFilter
	cursor  int
	loading bool
	err     error
	status  string

	help help.Model
}

const inboxPageSize = 100

func newInboxModel(ctx context.Context, app *App, userID string) *inboxModel {
	return &inboxModel{
		ctx:     ctx,
		app:     app,
		userID:  userID,
		filter:  repository.NotificationFilter{Limit: inboxPageSize},
		loading: true,
		help:    help.New(),
	}
}

func (m *inboxModel) Init() tea.Cmd {
	return m.load()
}

func (m *inboxModel) load() tea.Cmd {
	app, ctx, userID, filter := m.app, m.ctx, m.userID, m.filter
	return func() tea.Msg {
		items, err := app.Notifications.List(ctx, userID, filter)
		if err != nil {
			return inboxLoadedMsg{err: err}
		}
		counts, err := app.Notifications.UnreadCounts(ctx, userID)
		return inboxLoadedMsg{items: items, counts: counts, err: err}
	}
}

func (m *inboxModel) markRead(id string) tea.Cmd {
	app, ctx, userID := m.app, m.ctx, m.userID
	return func() tea.Msg {
		return inboxMarkedMsg{n: 1, err: app.Notifications.MarkRead(ctx, userID, id)}
	}
}

func (m *inboxModel) markAllRead() tea.Cmd {
	app, ctx, userID := m.app, m.ctx, m.userID
	return func() tea.Msg {
		n, err := app.Notifications.MarkAllRead(ctx, userID)
		return inboxMarkedMsg{n: n, err: err}
	}
}

func (m *inboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case inboxLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.items = msg.items
		m.counts = msg.counts
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		return m, nil

	case inboxMarkedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("Marked %d read.", msg.n)
		return m, m.load()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *inboxModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, inboxKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, inboxKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, inboxKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, inboxKeys.Read):
		if n := m.selected(); n != nil && !n.Read {
			return m, m.markRead(n.ID)
		}
	case key.Matches(msg, inboxKeys.ReadAll):
		if m.counts.Total > 0 {
			return m, m.markAllRead()
		}
	case key.Matches(msg, inboxKeys.Unread):
		m.filter.UnreadOnly = !m.filter.UnreadOnly
		m.cursor = 0
		return m, m.load()
	case key.Matches(msg, inboxKeys.Mine):
		m.filter.MineOnly = !m.filter.MineOnly
		m.cursor = 0
		return m, m.load()
	case key.Matches(msg, inboxKeys.Refresh):
		m.status = ""
		return m, m.load()
	}
	return m, nil
}

func (m *inboxModel) selected() *domain.Notification {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

func (m *inboxModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading notifications...")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Inbox") + "  " + formatter.FormatUnreadCounts(m.counts))
	if filters := m.filterLabel(); filters != "" {
		b.WriteString("  " + formatter.Dim(filters))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString("  " + formatter.Dim("No notifications.") + "\n")
	}

	now := m.app.now()
	for i, n := range m.items {
		cursor := "  "
		title := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			title = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			cursor,
			formatter.ReadMark(n.Read),
			formatter.NotificationStyle(n.Type).Render(n.Type.Label()),
			title.Render(n.Title),
			formatter.Dim(formatter.TimestampFrom(n.CreatedAt, now)),
		))
	}

	if n := m.selected(); n != nil && n.Message != "" {
		b.WriteString("\n" + formatter.RenderBox(n.Title, n.Message) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + formatter.StyleGreen.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + m.help.View(inboxKeys) + "\n")
	return b.String()
}

func (m *inboxModel) filterLabel() string {
	var parts []string
	if m.filter.UnreadOnly {
		parts = append(parts, "unread")
	}
	if m.filter.MineOnly {
		parts = append(parts, "mine")
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
