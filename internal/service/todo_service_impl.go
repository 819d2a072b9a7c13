package service

import (
	"context"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/google/uuid"
)

type todoService struct {
	todos    repository.TodoRepo
	uow      db.UnitOfWork
	fanout   *Fanout
	now      Clock
	observer UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, uow db.UnitOfWork, fanout *Fanout, clock Clock, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		uow:      uow,
		fanout:   fanout,
		now:      clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) GetByID(ctx context.Context, id string) (*domain.CardTodo, error) {
	return s.todos.GetByID(ctx, id)
}

func (s *todoService) ListByCard(ctx context.Context, cardID string) ([]*domain.CardTodo, error) {
	return s.todos.ListByCard(ctx, cardID)
}

// cardContext loads the card and project a todo belongs to.
func cardContext(ctx context.Context, tx db.DBTX, cardID string) (*domain.Card, *domain.Project, error) {
	card, err := repository.NewSQLCardRepo(tx).GetByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	project, err := repository.NewSQLProjectRepo(tx).GetByID(ctx, card.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return card, project, nil
}

// Create appends a user todo after the card's existing todos.
func (s *todoService) Create(ctx context.Context, actorID string, t *domain.CardTodo) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"card_id": t.CardID, "actor_id": actorID}
	defer observe(ctx, s.observer, "create-todo", startedAt, fields, &err)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TodoPending
	}
	t.IsOriginal = false
	now := s.now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err = t.Validate(); err != nil {
		return invalid(err)
	}

	var (
		card    *domain.Card
		project *domain.Project
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		card, project, err = cardContext(ctx, tx, t.CardID)
		if err != nil {
			return err
		}
		todos := repository.NewSQLTodoRepo(tx)
		existing, err := todos.ListByCard(ctx, t.CardID)
		if err != nil {
			return err
		}
		t.Order = len(existing)
		for _, e := range existing {
			if e.Order >= t.Order {
				t.Order = e.Order + 1
			}
		}
		return todos.Create(ctx, t)
	})
	if err != nil {
		return err
	}

	s.fanout.todoChanged(ctx, card, project, "New TODO added",
		changes.TodoCreatedMessage(t.Label, card.Name),
		map[string]any{"todo_label": t.Label, "action": "created"})
	return nil
}

// Update saves the todo and notifies when its status or comment changed.
func (s *todoService) Update(ctx context.Context, actorID string, t *domain.CardTodo) (change changes.TodoChange, err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": t.ID, "actor_id": actorID}
	defer observe(ctx, s.observer, "update-todo", startedAt, fields, &err)

	if err = t.Validate(); err != nil {
		return changes.TodoChange{}, invalid(err)
	}

	var (
		card    *domain.Card
		project *domain.Project
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		todos := repository.NewSQLTodoRepo(tx)
		current, err := todos.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		card, project, err = cardContext(ctx, tx, current.CardID)
		if err != nil {
			return err
		}

		t.CardID = current.CardID
		t.IsOriginal = current.IsOriginal
		t.CreatedAt = current.CreatedAt
		t.UpdatedAt = s.now().UTC()
		if err := todos.Update(ctx, t); err != nil {
			return err
		}
		change = changes.DetectTodo(current.Status, current.Comment, t)
		return nil
	})
	if err != nil {
		return changes.TodoChange{}, err
	}

	fields["changed"] = change.Changed()
	if change.Changed() {
		s.fanout.todoChanged(ctx, card, project, "TODO updated", change.Message(card.Name),
			map[string]any{
				"todo_label":      t.Label,
				"action":          "updated",
				"old_status":      string(change.OldStatus),
				"new_status":      string(change.NewStatus),
				"comment_changed": change.CommentChanged,
			})
	}
	return change, nil
}

// Delete removes a user todo. Checklist todos are refused with
// ErrOriginalTodo.
func (s *todoService) Delete(ctx context.Context, actorID, todoID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": todoID, "actor_id": actorID}
	defer observe(ctx, s.observer, "delete-todo", startedAt, fields, &err)

	var (
		todo    *domain.CardTodo
		card    *domain.Card
		project *domain.Project
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		todos := repository.NewSQLTodoRepo(tx)
		var err error
		todo, err = todos.GetByID(ctx, todoID)
		if err != nil {
			return err
		}
		if todo.IsOriginal {
			return ErrOriginalTodo
		}
		card, project, err = cardContext(ctx, tx, todo.CardID)
		if err != nil {
			return err
		}
		return todos.Delete(ctx, todoID)
	})
	if err != nil {
		return err
	}

	s.fanout.todoChanged(ctx, card, project, "TODO removed",
		changes.TodoDeletedMessage(todo.Label, card.Name),
		map[string]any{"todo_label": todo.Label, "action": "deleted"})
	return nil
}
