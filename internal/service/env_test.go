package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/notify"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testNow is a Friday.
var testNow = time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type testEnv struct {
	db            *sql.DB
	uow           db.UnitOfWork
	users         *repository.SQLUserRepo
	sprints       *repository.SQLSprintRepo
	projects      *repository.SQLProjectRepo
	cards         *repository.SQLCardRepo
	todos         *repository.SQLTodoRepo
	logs          *repository.SQLCardLogRepo
	notifications *repository.SQLNotificationRepo
	weekly        *repository.SQLWeeklyConfigRepo
	fanout        *Fanout
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(t, testutil.NewTestDB(t))
}

func newTestEnvOn(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()
	e := &testEnv{
		db:            database,
		uow:           testutil.NewTestUoW(database),
		users:         repository.NewSQLUserRepo(database),
		sprints:       repository.NewSQLSprintRepo(database),
		projects:      repository.NewSQLProjectRepo(database),
		cards:         repository.NewSQLCardRepo(database),
		todos:         repository.NewSQLTodoRepo(database),
		logs:          repository.NewSQLCardLogRepo(database),
		notifications: repository.NewSQLNotificationRepo(database),
		weekly:        repository.NewSQLWeeklyConfigRepo(database),
	}
	dispatcher := notify.NewDispatcher(e.users, e.notifications, nil, quietLogger)
	e.fanout = NewFanout(dispatcher, notify.NewRecipients(e.users), quietLogger)
	return e
}

func (e *testEnv) user(t *testing.T, username string, opts ...testutil.UserOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(username, opts...)
	require.NoError(t, e.users.Upsert(context.Background(), u))
	return u
}

func (e *testEnv) sprint(t *testing.T, name string, start time.Time, days int, opts ...testutil.SprintOption) *domain.Sprint {
	t.Helper()
	s := testutil.NewTestSprint(name, start, days, opts...)
	require.NoError(t, e.sprints.Create(context.Background(), s))
	return s
}

func (e *testEnv) project(t *testing.T, sprintID, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(sprintID, name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

func (e *testEnv) card(t *testing.T, projectID, name string, opts ...testutil.CardOption) *domain.Card {
	t.Helper()
	c := testutil.NewTestCard(projectID, name, opts...)
	require.NoError(t, e.cards.Create(context.Background(), c))
	return c
}

func (e *testEnv) inbox(t *testing.T, userID string) []*domain.Notification {
	t.Helper()
	list, err := e.notifications.ListForUser(context.Background(), userID, repository.NotificationFilter{})
	require.NoError(t, err)
	return list
}

func (e *testEnv) sprintService(clock Clock) SprintService {
	return NewSprintService(e.sprints, e.uow, e.fanout, clock, quietLogger)
}

func (e *testEnv) cardService() CardService {
	return NewCardService(e.cards, e.logs, e.uow, e.fanout, fixedClock(testNow))
}
