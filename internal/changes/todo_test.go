package changes

import (
	"testing"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectTodo(t *testing.T) {
	todo := &domain.CardTodo{Label: "Deploy", Status: domain.TodoCompleted, Comment: "done in prod"}

	both := DetectTodo(domain.TodoPending, "", todo)
	assert.True(t, both.Changed())
	assert.Equal(t, `TODO "Deploy" on card "Billing" moved from "Pending" to "Completed" and its comment was updated.`,
		both.Message("Billing"))

	statusOnly := DetectTodo(domain.TodoPending, "done in prod", todo)
	assert.True(t, statusOnly.StatusChanged)
	assert.False(t, statusOnly.CommentChanged)
	assert.Equal(t, `TODO "Deploy" on card "Billing" moved from "Pending" to "Completed".`, statusOnly.Message("Billing"))

	commentOnly := DetectTodo(domain.TodoCompleted, "", todo)
	assert.Equal(t, `The comment of TODO "Deploy" on card "Billing" was updated.`, commentOnly.Message("Billing"))

	none := DetectTodo(domain.TodoCompleted, " done in prod ", todo)
	assert.False(t, none.Changed())
	assert.Empty(t, none.Message("Billing"))
}
