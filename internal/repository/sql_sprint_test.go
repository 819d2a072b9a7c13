package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSprintRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLSprintRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Sprint 1", testutil.Date(2026, 3, 2), 12)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", got.Name)
	assert.Equal(t, testutil.Date(2026, 3, 2), got.StartDate)
	assert.Equal(t, testutil.Date(2026, 3, 13), got.EndDate)
	assert.Equal(t, 12, got.DurationDays)
	assert.False(t, got.Finalized)
}

func TestSprintRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLSprintRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSprintRepo_MarkFinalizedOnlyOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLSprintRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Sprint 1", testutil.Date(2026, 3, 2), 12)
	require.NoError(t, repo.Create(ctx, s))

	first, err := repo.MarkFinalized(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.MarkFinalized(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, second)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Finalized)
}

func TestSprintRepo_UpdateNeverClearsFinalized(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLSprintRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Sprint 1", testutil.Date(2026, 3, 2), 12, testutil.Finalized())
	require.NoError(t, repo.Create(ctx, s))

	s.Finalized = false
	s.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.Finalized)
}

func TestSprintRepo_FindInProgressAndAfter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLSprintRepo(db)
	ctx := context.Background()

	past := testutil.NewTestSprint("Past", testutil.Date(2026, 2, 16), 12)
	current := testutil.NewTestSprint("Current", testutil.Date(2026, 3, 2), 12)
	overlapping := testutil.NewTestSprint("Overlapping", testutil.Date(2026, 3, 9), 12)
	future := testutil.NewTestSprint("Future", testutil.Date(2026, 3, 30), 12)
	require.NoError(t, repo.Create(ctx, past))
	require.NoError(t, repo.Create(ctx, current))
	require.NoError(t, repo.Create(ctx, overlapping))
	require.NoError(t, repo.Create(ctx, future))

	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	got, err := repo.FindInProgress(ctx, past.ID, today)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID, got.ID, "earliest start wins")

	got, err = repo.FindInProgress(ctx, current.ID, today)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, overlapping.ID, got.ID, "the sprint itself is excluded")

	got, err = repo.FindFirstStartingAfter(ctx, overlapping.ID, overlapping.EndDate)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, future.ID, got.ID)

	got, err = repo.FindFirstStartingAfter(ctx, future.ID, future.EndDate)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSprintRepo_ListDueForFinalization(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLSprintRepo(db)
	ctx := context.Background()

	older := testutil.NewTestSprint("Older", testutil.Date(2026, 2, 2), 12)
	old := testutil.NewTestSprint("Old", testutil.Date(2026, 2, 16), 12)
	done := testutil.NewTestSprint("Done", testutil.Date(2026, 1, 19), 12, testutil.Finalized())
	endsToday := testutil.NewTestSprint("EndsToday", testutil.Date(2026, 3, 2), 12)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, endsToday))

	due, err := repo.ListDueForFinalization(ctx, endsToday.EndDate)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, older.ID, due[0].ID)
	assert.Equal(t, old.ID, due[1].ID)
}
