package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRepo_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, p := seedProject(t, database)
	card := testutil.NewTestCard(p.ID, "Card")
	require.NoError(t, NewSQLCardRepo(database).Create(ctx, card))

	repo := NewSQLTodoRepo(database)
	second := testutil.NewTestTodo(card.ID, "Second", 1, true)
	first := testutil.NewTestTodo(card.ID, "First", 0, true)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	list, err := repo.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Label)
	assert.True(t, list[0].IsOriginal)

	first.Status = domain.TodoBlocked
	first.Comment = "waiting"
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TodoBlocked, got.Status)
	assert.Equal(t, "waiting", got.Comment)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
