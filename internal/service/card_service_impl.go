package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/google/uuid"
)

type cardService struct {
	cards    repository.CardRepo
	logs     repository.CardLogRepo
	uow      db.UnitOfWork
	fanout   *Fanout
	now      Clock
	observer UseCaseObserver
}

func NewCardService(
	cards repository.CardRepo,
	logs repository.CardLogRepo,
	uow db.UnitOfWork,
	fanout *Fanout,
	clock Clock,
	observers ...UseCaseObserver,
) CardService {
	return &cardService{
		cards:    cards,
		logs:     logs,
		uow:      uow,
		fanout:   fanout,
		now:      clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *cardService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *cardService) ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error) {
	return s.cards.ListByProject(ctx, projectID)
}

func (s *cardService) Logs(ctx context.Context, cardID string) ([]*domain.CardLog, error) {
	return s.logs.ListByCard(ctx, cardID)
}

// Create stores the card with its checklist todos and the creation log in
// one transaction, then notifies.
func (s *cardService) Create(ctx context.Context, actorID string, c *domain.Card) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"card_name": c.Name, "project_id": c.ProjectID}
	defer observe(ctx, s.observer, "create-card", startedAt, fields, &err)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.ApplyDefaults()
	now := s.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err = c.Validate(); err != nil {
		return invalid(err)
	}

	var (
		project     *domain.Project
		creatorName string
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLUserRepo(tx)
		cards := repository.NewSQLCardRepo(tx)

		p, err := repository.NewSQLProjectRepo(tx).GetByID(ctx, c.ProjectID)
		if errors.Is(err, repository.ErrNotFound) {
			return invalidf("project %s does not exist", c.ProjectID)
		}
		if err != nil {
			return err
		}
		if err := checkActiveName(ctx, cards, c.Name, c.ID); err != nil {
			return err
		}

		creator, err := actorRef(ctx, users, actorID)
		if err != nil {
			return err
		}
		c.CreatorID = creator

		if err := cards.Create(ctx, c); err != nil {
			return err
		}
		if err := createChecklist(ctx, repository.NewSQLTodoRepo(tx), c, now); err != nil {
			return err
		}

		names, err := namesFor(ctx, users, c.AssigneeID, c.CreatorID)
		if err != nil {
			return err
		}
		if err := repository.NewSQLCardLogRepo(tx).Create(ctx, &domain.CardLog{
			ID:          uuid.New().String(),
			CardID:      c.ID,
			EventType:   domain.LogCreated,
			Description: changes.DescribeCreated(c, names),
			UserID:      creator,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		project = p
		creatorName = nameOr(names, c.CreatorID)
		return nil
	})
	if err != nil {
		return err
	}

	fields["card_id"] = c.ID
	s.fanout.cardCreated(ctx, c, project, creatorName)
	return nil
}

func checkActiveName(ctx context.Context, cards repository.CardRepo, name, excludeID string) error {
	taken, err := cards.ActiveNameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return invalidf("duplicate active card name %q", name)
	}
	return nil
}

func createChecklist(ctx context.Context, todos repository.TodoRepo, c *domain.Card, now time.Time) error {
	for i, item := range domain.PlanTodos(c.Area, c.Complexity) {
		t := &domain.CardTodo{
			ID:         uuid.New().String(),
			CardID:     c.ID,
			Label:      item.Label,
			IsOriginal: true,
			Status:     domain.TodoPending,
			Order:      i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := todos.Create(ctx, t); err != nil {
			return fmt.Errorf("creating checklist todo %q: %w", item.Label, err)
		}
	}
	return nil
}

// Update saves c over the stored card, logs what changed and notifies. A
// save with no visible difference writes no log and sends nothing.
func (s *cardService) Update(ctx context.Context, actorID string, c *domain.Card) (change changes.CardChange, err error) {
	startedAt := time.Now()
	fields := map[string]any{"card_id": c.ID}
	defer observe(ctx, s.observer, "update-card", startedAt, fields, &err)

	c.ApplyDefaults()
	if err = c.Validate(); err != nil {
		return changes.CardChange{}, invalid(err)
	}

	var (
		project     *domain.Project
		creatorName string
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLUserRepo(tx)
		cards := repository.NewSQLCardRepo(tx)
		projects := repository.NewSQLProjectRepo(tx)

		current, err := cards.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		owner, err := projects.GetByID(ctx, current.ProjectID)
		if err != nil {
			return err
		}
		if owner.IsSuggestions() {
			if err := canEditDemand(ctx, users, actorID, current); err != nil {
				return err
			}
		}

		project = owner
		if c.ProjectID != current.ProjectID {
			project, err = projects.GetByID(ctx, c.ProjectID)
			if errors.Is(err, repository.ErrNotFound) {
				return invalidf("project %s does not exist", c.ProjectID)
			}
			if err != nil {
				return err
			}
		}
		if c.Name != current.Name {
			if err := checkActiveName(ctx, cards, c.Name, c.ID); err != nil {
				return err
			}
		}

		snapshot := changes.CaptureCard(current)
		c.CreatorID = current.CreatorID
		c.CreatedAt = current.CreatedAt
		c.UpdatedAt = s.now().UTC()
		if err := cards.Update(ctx, c); err != nil {
			return err
		}

		names, err := namesFor(ctx, users, snapshot.AssigneeID, c.AssigneeID, c.CreatorID)
		if err != nil {
			return err
		}
		change = changes.DetectCard(&snapshot, c, names)
		creatorName = nameOr(names, c.CreatorID)

		entry, ok := changeLog(c, change)
		if !ok {
			return nil
		}
		entry.ID = uuid.New().String()
		entry.UserID, err = actorRef(ctx, users, actorID)
		if err != nil {
			return err
		}
		entry.CreatedAt = c.UpdatedAt
		return repository.NewSQLCardLogRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		return changes.CardChange{}, err
	}

	fields["change"] = change.Kind.String()
	switch change.Kind {
	case changes.KindMoved:
		s.fanout.cardMoved(ctx, c, project, change)
	case changes.KindUpdated:
		s.fanout.cardUpdated(ctx, c, project, change, creatorName)
	}
	return change, nil
}

// changeLog builds the audit entry for a detected change. Only moves and
// updates are logged.
func changeLog(c *domain.Card, change changes.CardChange) (*domain.CardLog, bool) {
	switch change.Kind {
	case changes.KindMoved:
		return &domain.CardLog{
			CardID:      c.ID,
			EventType:   domain.LogMoved,
			Description: movedText(c.Name, change),
		}, true
	case changes.KindUpdated:
		return &domain.CardLog{
			CardID:      c.ID,
			EventType:   domain.LogChanged,
			Description: updatedText(c.Name, change),
		}, true
	default:
		return nil, false
	}
}

func (s *cardService) Delete(ctx context.Context, actorID, cardID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"card_id": cardID}
	defer observe(ctx, s.observer, "delete-card", startedAt, fields, &err)

	var (
		card    *domain.Card
		project *domain.Project
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cards := repository.NewSQLCardRepo(tx)

		c, err := cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		p, err := repository.NewSQLProjectRepo(tx).GetByID(ctx, c.ProjectID)
		if err != nil {
			return err
		}
		if p.IsSuggestions() {
			if err := canEditDemand(ctx, repository.NewSQLUserRepo(tx), actorID, c); err != nil {
				return err
			}
		}
		if err := cards.Delete(ctx, cardID); err != nil {
			return err
		}
		card, project = c, p
		return nil
	})
	if err != nil {
		return err
	}

	s.fanout.cardDeleted(ctx, card, project)
	return nil
}
