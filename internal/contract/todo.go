package contract

import (
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// TodoRequest creates or patches a todo. Nil fields are left alone.
type TodoRequest struct {
	Label   *string `json:"label"`
	Status  *string `json:"status"`
	Comment *string `json:"comment"`
}

func (r TodoRequest) Apply(t *domain.CardTodo) {
	setStr(&t.Label, r.Label)
	setStr(&t.Comment, r.Comment)
	if r.Status != nil {
		t.Status = domain.TodoStatus(*r.Status)
	}
}

type Todo struct {
	ID            string `json:"id"`
	CardID        string `json:"card_id"`
	Label         string `json:"label"`
	IsOriginal    bool   `json:"is_original"`
	Status        string `json:"status"`
	StatusDisplay string `json:"status_display"`
	Comment       string `json:"comment"`
	Order         int    `json:"order"`
	UpdatedAt     string `json:"updated_at"`
}

func NewTodo(t *domain.CardTodo) Todo {
	return Todo{
		ID:            t.ID,
		CardID:        t.CardID,
		Label:         t.Label,
		IsOriginal:    t.IsOriginal,
		Status:        string(t.Status),
		StatusDisplay: t.Status.Label(),
		Comment:       t.Comment,
		Order:         t.Order,
		UpdatedAt:     t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
