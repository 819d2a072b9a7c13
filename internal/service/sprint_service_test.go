package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSprint_PrefersSprintInProgress(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ended := e.sprint(t, "Sprint 1", testutil.Date(2026, 3, 2), 5)
	current := e.sprint(t, "Sprint 2", testutil.Date(2026, 3, 9), 12)
	e.sprint(t, "Sprint 3", testutil.Date(2026, 3, 23), 12)

	next, err := e.sprintService(fixedClock(testNow)).NextSprint(ctx, ended)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, current.ID, next.ID)
}

func TestNextSprint_FallsBackToFirstStartingAfterEnd(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	running := e.sprint(t, "Sprint 1", testutil.Date(2026, 3, 9), 5)
	e.sprint(t, "Sprint 4", testutil.Date(2026, 3, 30), 5)
	following := e.sprint(t, "Sprint 2", testutil.Date(2026, 3, 16), 5)

	next, err := e.sprintService(fixedClock(testNow)).NextSprint(ctx, running)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, following.ID, next.ID, "the sprint itself is never its own destination")
}

func TestNextSprint_NilWhenNothingFollows(t *testing.T) {
	e := newTestEnv(t)
	only := e.sprint(t, "Sprint 1", testutil.Date(2026, 3, 9), 5)

	next, err := e.sprintService(fixedClock(testNow)).NextSprint(context.Background(), only)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestFinalize_ReplicatesOpenCardsIntoDestination(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	pm := e.user(t, "pm", testutil.WithRole(domain.RoleManager))
	dev := e.user(t, "dev")
	sup := e.user(t, "sup", testutil.WithRole(domain.RoleSupervisor))

	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	dest := e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	x := e.project(t, src.ID, "X", testutil.WithManager(pm.ID), testutil.WithDeveloper(dev.ID),
		testutil.WithDeliveredAt(testNow))
	cx := domain.Complexity{SelectedItems: []string{"read_script"}, SelectedDevelopment: domain.DevelopmentMedium}
	e.card(t, x.ID, "Open1", testutil.WithAssignee(dev.ID), testutil.WithCreator(dev.ID),
		testutil.WithComplexity(cx), testutil.WithComment("waiting on data"), testutil.WithEndAt(testNow))
	e.card(t, x.ID, "Closed1", testutil.WithCardStatus(domain.CardDone))
	y := e.project(t, src.ID, "Y")
	e.card(t, y.ID, "Gone", testutil.WithCardStatus(domain.CardNotViable))

	res, err := e.sprintService(fixedClock(testNow)).Finalize(ctx, src.ID, sup.ID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyFinalized)
	assert.Equal(t, dest.ID, res.DestinationID)
	assert.Equal(t, "Sprint B", res.DestinationName)
	assert.Equal(t, 1, res.ProjectsCreated)
	assert.Equal(t, 1, res.CardsCopied)

	stored, err := e.sprints.GetByID(ctx, src.ID)
	require.NoError(t, err)
	assert.True(t, stored.Finalized)

	carried, err := e.projects.ListBySprint(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, carried, 1)
	assert.Equal(t, "X", carried[0].Name)
	assert.Equal(t, domain.ProjectCreated, carried[0].Status)
	assert.Equal(t, pm.ID, *carried[0].ManagerID)
	assert.Equal(t, dev.ID, *carried[0].DeveloperID)
	assert.Nil(t, carried[0].DeliveredAt, "milestones start over")

	copied, err := e.cards.ListByProject(ctx, carried[0].ID)
	require.NoError(t, err)
	require.Len(t, copied, 1)
	c := copied[0]
	assert.Equal(t, "Open1", c.Name)
	assert.Equal(t, domain.CardToDevelop, c.Status)
	assert.Equal(t, dev.ID, *c.AssigneeID)
	assert.Equal(t, sup.ID, *c.CreatorID, "the finalizing actor becomes the creator")
	assert.True(t, cx.Normalize().Equal(c.Complexity))
	assert.Equal(t, "waiting on data", c.Comment)
	require.NotNil(t, c.EndAt)
	assert.True(t, testNow.Equal(*c.EndAt))

	assert.Empty(t, e.inbox(t, dev.ID), "replication does not notify per card")
}

func TestFinalize_KeepsOriginalCreatorWithoutActor(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	dev := e.user(t, "dev")
	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	dest := e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	p := e.project(t, src.ID, "X")
	e.card(t, p.ID, "Open1", testutil.WithCreator(dev.ID))

	_, err := e.sprintService(fixedClock(testNow)).Finalize(ctx, src.ID, "")
	require.NoError(t, err)

	carried, err := e.projects.ListBySprint(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, carried, 1)
	copied, err := e.cards.ListByProject(ctx, carried[0].ID)
	require.NoError(t, err)
	require.Len(t, copied, 1)
	assert.Equal(t, dev.ID, *copied[0].CreatorID)
}

func TestFinalize_SecondCallIsNoOp(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	dest := e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	p := e.project(t, src.ID, "X")
	e.card(t, p.ID, "Open1")
	svc := e.sprintService(fixedClock(testNow))

	_, err := svc.Finalize(ctx, src.ID, "")
	require.NoError(t, err)
	again, err := svc.Finalize(ctx, src.ID, "")
	require.NoError(t, err)
	assert.True(t, again.AlreadyFinalized)
	assert.Zero(t, again.ProjectsCreated)

	carried, err := e.projects.ListBySprint(ctx, dest.ID)
	require.NoError(t, err)
	assert.Len(t, carried, 1)
}

func TestFinalize_NoDestination(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)

	res, err := e.sprintService(fixedClock(testNow)).Finalize(ctx, src.ID, "")
	assert.ErrorIs(t, err, ErrNoDestination)
	assert.Nil(t, res)

	stored, err := e.sprints.GetByID(ctx, src.ID)
	require.NoError(t, err)
	assert.False(t, stored.Finalized, "the interactive path leaves the sprint open")
}

func TestFinalize_UnknownSprint(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.sprintService(fixedClock(testNow)).Finalize(context.Background(), "missing", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFinalize_RollsBackOnCardCopyFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	dest := e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	p := e.project(t, src.ID, "X")
	e.card(t, p.ID, "Open1")

	failUoW := &testutil.FailOnNthExecUoW{
		DB:       e.db,
		FailWhen: "INSERT INTO cards",
		Err:      errors.New("injected card copy failure"),
	}
	svc := NewSprintService(e.sprints, failUoW, e.fanout, fixedClock(testNow), quietLogger)

	_, err := svc.Finalize(ctx, src.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected card copy failure")

	stored, err := e.sprints.GetByID(ctx, src.ID)
	require.NoError(t, err)
	assert.False(t, stored.Finalized, "finalized flag should be rolled back")

	carried, err := e.projects.ListBySprint(ctx, dest.ID)
	require.NoError(t, err)
	assert.Empty(t, carried, "no partial replication")
}

func TestFinalize_ConcurrentCallsReplicateOnce(t *testing.T) {
	e := newTestEnvOn(t, testutil.NewFileTestDB(t))
	ctx := context.Background()
	src := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	dest := e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	p := e.project(t, src.ID, "X")
	e.card(t, p.ID, "Open1")
	e.card(t, p.ID, "Open2")
	svc := e.sprintService(fixedClock(testNow))

	const callers = 4
	results := make([]*FinalizeResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Finalize(ctx, src.ID, "")
		}(i)
	}
	wg.Wait()

	replicated := 0
	for i := range results {
		require.NoError(t, errs[i])
		if !results[i].AlreadyFinalized {
			replicated++
			assert.Equal(t, 2, results[i].CardsCopied)
		}
	}
	assert.Equal(t, 1, replicated)

	carried, err := e.projects.ListBySprint(ctx, dest.ID)
	require.NoError(t, err)
	assert.Len(t, carried, 1)
}

func TestFinalizeDue_ReplicatesEndedSprints(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ended := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)
	e.sprint(t, "Sprint B", testutil.Date(2026, 3, 12), 14)
	e.sprint(t, "Old", testutil.Date(2026, 2, 1), 5, testutil.Finalized())
	p := e.project(t, ended.ID, "X")
	e.card(t, p.ID, "Open1")

	sweep, err := e.sprintService(fixedClock(testNow)).FinalizeDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Replicated: 1}, *sweep)
}

func TestFinalizeDue_MarksFinalizedWithoutDestination(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ended := e.sprint(t, "Sprint A", testutil.Date(2026, 3, 1), 11)

	sweep, err := e.sprintService(fixedClock(testNow)).FinalizeDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{WithoutDestination: 1}, *sweep)

	stored, err := e.sprints.GetByID(ctx, ended.ID)
	require.NoError(t, err)
	assert.True(t, stored.Finalized)
}

func TestSprintCreate_NotifiesActiveUsers(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	sup := e.user(t, "sup", testutil.WithRole(domain.RoleSupervisor))
	dev := e.user(t, "dev")
	gone := e.user(t, "gone", testutil.Inactive())

	sp := &domain.Sprint{Name: "Sprint 7", StartDate: testutil.Date(2026, 3, 16), DurationDays: 14}
	require.NoError(t, e.sprintService(fixedClock(testNow)).Create(ctx, sup.ID, sp))
	assert.Equal(t, testutil.Date(2026, 3, 29), sp.EndDate)
	require.NotNil(t, sp.SupervisorID)
	assert.Equal(t, sup.ID, *sp.SupervisorID)

	for _, u := range []*domain.User{sup, dev} {
		inbox := e.inbox(t, u.ID)
		require.Len(t, inbox, 1)
		assert.Equal(t, domain.NotifySprintCreated, inbox[0].Type)
		assert.Equal(t, sp.ID, *inbox[0].SprintID)
	}
	assert.Empty(t, e.inbox(t, gone.ID))
}

func TestSprintCreate_RejectsInvalidWindow(t *testing.T) {
	e := newTestEnv(t)
	svc := e.sprintService(fixedClock(testNow))

	err := svc.Create(context.Background(), "", &domain.Sprint{Name: "Empty", StartDate: testutil.Date(2026, 3, 16)})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(context.Background(), "", &domain.Sprint{
		Name:         "Backwards",
		StartDate:    testutil.Date(2026, 3, 16),
		EndDate:      testutil.Date(2026, 3, 10),
		DurationDays: 3,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
