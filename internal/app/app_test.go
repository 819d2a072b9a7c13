package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/notify"
	"github.com/alexanderramin/sprintdesk/internal/push"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SharesOneStoreAndPushesNotifications(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	hub := push.NewHub(4, logger)
	t.Cleanup(hub.Close)

	now := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	svc := New(database, Options{
		Publisher:   hub,
		Clock:       func() time.Time { return now },
		Logger:      logger,
		LogUseCases: true,
	})

	sup := testutil.NewTestUser("sup", testutil.WithRole(domain.RoleSupervisor))
	require.NoError(t, repository.NewSQLUserRepo(database).Upsert(ctx, sup))

	events, unsubscribe := hub.Subscribe(push.Channel(sup.ID))
	defer unsubscribe()

	sp := &domain.Sprint{Name: "Sprint 7", StartDate: testutil.Date(2026, 3, 16), DurationDays: 14}
	require.NoError(t, svc.Sprints.Create(ctx, sup.ID, sp))

	stored, err := svc.Sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 7", stored.Name)

	inbox, err := svc.Notifications.List(ctx, sup.ID, repository.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	select {
	case data := <-events:
		var p notify.Payload
		require.NoError(t, json.Unmarshal(data, &p))
		assert.Equal(t, inbox[0].ID, p.ID)
		assert.Equal(t, string(domain.NotifySprintCreated), p.Type)
	case <-time.After(time.Second):
		t.Fatal("no push received")
	}

	assert.Contains(t, logs.String(), "create-sprint", "use cases are logged when enabled")
}

func TestNew_Defaults(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := New(database, Options{})

	require.NotNil(t, svc.Dispatcher)
	n, err := svc.Dispatcher.Send(context.Background(), "nobody", notify.Message{Type: domain.NotifyRoleChanged})
	require.NoError(t, err)
	assert.Nil(t, n, "unknown users are skipped")
}
