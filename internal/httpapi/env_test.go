package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/app"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/push"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var (
	testNow    = time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	testSecret = []byte("test-secret")
	quiet      = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiEnv struct {
	db     *sql.DB
	svc    *app.Services
	hub    *push.Hub
	router *gin.Engine

	users    *repository.SQLUserRepo
	sprints  *repository.SQLSprintRepo
	projects *repository.SQLProjectRepo
	cards    *repository.SQLCardRepo
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	hub := push.NewHub(8, quiet)
	t.Cleanup(hub.Close)
	clock := func() time.Time { return testNow }

	svc := app.New(database, app.Options{Publisher: hub, Clock: clock, Logger: quiet})
	router := NewRouter(Deps{
		Sprints:       svc.Sprints,
		Cards:         svc.Cards,
		Todos:         svc.Todos,
		Users:         svc.Users,
		Notifications: svc.Notifications,
		Weekly:        svc.Weekly,
		Push:          hub,
		DB:            database,
		Clock:         clock,
		Logger:        quiet,
	}, Options{JWTSecret: testSecret, PingInterval: 20 * time.Millisecond})

	return &apiEnv{
		db:       database,
		svc:      svc,
		hub:      hub,
		router:   router,
		users:    repository.NewSQLUserRepo(database),
		sprints:  repository.NewSQLSprintRepo(database),
		projects: repository.NewSQLProjectRepo(database),
		cards:    repository.NewSQLCardRepo(database),
	}
}

func (e *apiEnv) user(t *testing.T, username string, opts ...testutil.UserOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(username, opts...)
	require.NoError(t, e.users.Upsert(context.Background(), u))
	return u
}

func (e *apiEnv) sprint(t *testing.T, name string, start time.Time, days int) *domain.Sprint {
	t.Helper()
	s := testutil.NewTestSprint(name, start, days)
	require.NoError(t, e.sprints.Create(context.Background(), s))
	return s
}

func (e *apiEnv) project(t *testing.T, sprintID, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(sprintID, name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

func (e *apiEnv) card(t *testing.T, projectID, name string, opts ...testutil.CardOption) *domain.Card {
	t.Helper()
	c := testutil.NewTestCard(projectID, name, opts...)
	require.NoError(t, e.cards.Create(context.Background(), c))
	return c
}

func signToken(t *testing.T, secret []byte, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	return token
}

// do sends body as JSON on behalf of userID; an empty userID sends no
// token.
func (e *apiEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
