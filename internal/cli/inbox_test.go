package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/notify"
	"github.com/alexanderramin/sprintdesk/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInbox(t *testing.T, e *cliEnv) *domain.User {
	t.Helper()
	ctx := context.Background()
	dev := e.user(t, "dev")
	for _, msg := range []notify.Message{
		{Type: domain.NotifyCardOverdue, Title: "Card overdue", Body: "Checkout API is past its deadline"},
		{Type: domain.NotifyCardMoved, Title: "Card moved", Body: "Search moved to testing"},
		{Type: domain.NotifySprintCreated, Title: "New sprint", Body: "Sprint 9 starts Monday"},
	} {
		_, err := e.svc.Dispatcher.Send(ctx, dev.ID, msg)
		require.NoError(t, err)
	}
	return dev
}

func newInboxDriver(t *testing.T, e *cliEnv, userID string) (*teatest.Driver, *inboxModel) {
	t.Helper()
	m := newInboxModel(context.Background(), e.app, userID)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(time.Second))
	d.DrainInit()
	return d, m
}

func unreadCounts(t *testing.T, e *cliEnv, userID string) domain.UnreadCounts {
	t.Helper()
	c, err := e.app.Notifications.UnreadCounts(context.Background(), userID)
	require.NoError(t, err)
	return c
}

func TestInbox_ListsNotifications(t *testing.T) {
	e := testApp(t)
	dev := seedInbox(t, e)

	d, m := newInboxDriver(t, e, dev.ID)
	require.False(t, m.loading)
	require.Len(t, m.items, 3)

	view := d.View()
	assert.Contains(t, view, "Inbox")
	assert.Contains(t, view, "3 unread (2 addressed to you)")
	for _, title := range []string{"Card overdue", "Card moved", "New sprint"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, m.items[0].Message, "the selected message is shown in full")
	assert.Contains(t, view, "mark read")
}

func TestInbox_CursorStaysInBounds(t *testing.T) {
	e := testApp(t)
	dev := seedInbox(t, e)
	d, m := newInboxDriver(t, e, dev.ID)

	d.PressUp()
	assert.Equal(t, 0, m.cursor)
	d.PressKeys("jjjjj")
	assert.Equal(t, 2, m.cursor)
	d.PressKey('k')
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, d.View(), m.items[1].Message)
}

func TestInbox_MarkRead(t *testing.T) {
	e := testApp(t)
	dev := seedInbox(t, e)
	d, m := newInboxDriver(t, e, dev.ID)

	d.PressDown()
	target := m.items[1]
	d.PressEnter()

	assert.Equal(t, 2, unreadCounts(t, e, dev.ID).Total)
	assert.True(t, m.items[1].Read, "the list reloads after marking")
	assert.Equal(t, target.ID, m.items[1].ID)
	assert.Contains(t, d.View(), "Marked 1 read.")

	d.PressKey('r')
	assert.Equal(t, 2, unreadCounts(t, e, dev.ID).Total, "marking a read notification again is a no-op")
}

func TestInbox_MarkAllAndFilters(t *testing.T) {
	e := testApp(t)
	dev := seedInbox(t, e)
	d, m := newInboxDriver(t, e, dev.ID)

	d.PressKey('m')
	require.Len(t, m.items, 2)
	assert.NotContains(t, d.View(), "New sprint")
	assert.Contains(t, d.View(), "[mine]")
	d.PressKey('m')
	require.Len(t, m.items, 3)

	d.PressKey('a')
	assert.Equal(t, domain.UnreadCounts{}, unreadCounts(t, e, dev.ID))
	assert.Contains(t, d.View(), "All caught up.")

	d.PressKey('u')
	assert.Empty(t, m.items)
	assert.Contains(t, d.View(), "No notifications.")
	assert.Contains(t, d.View(), "[unread]")
}

func TestInbox_RefreshPicksUpNewNotifications(t *testing.T) {
	e := testApp(t)
	dev := seedInbox(t, e)
	d, m := newInboxDriver(t, e, dev.ID)

	_, err := e.svc.Dispatcher.Send(context.Background(), dev.ID, notify.Message{
		Type: domain.NotifyCardDue1h, Title: "Due within the hour", Body: "Checkout API",
	})
	require.NoError(t, err)
	require.Len(t, m.items, 3)

	d.PressKey('g')
	require.Len(t, m.items, 4)
	assert.Contains(t, d.View(), "Due within the hour")
}

func TestInbox_ShowsLoadErrors(t *testing.T) {
	e := testApp(t)
	dev := e.user(t, "dev")
	d, _ := newInboxDriver(t, e, dev.ID)

	require.NoError(t, e.db.Close())
	d.PressKey('g')
	assert.Contains(t, d.View(), "Error:")
}

func TestInbox_Quit(t *testing.T) {
	e := testApp(t)
	dev := e.user(t, "dev")
	d, _ := newInboxDriver(t, e, dev.ID)

	assert.Contains(t, d.View(), "No notifications.")
	d.PressKey('q')
	assert.True(t, d.Quitting)
}
