package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	fanout   *Fanout
	now      Clock
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, fanout *Fanout, clock Clock, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		fanout:   fanout,
		now:      clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Project, error) {
	return s.projects.ListBySprint(ctx, sprintID)
}

func (s *projectService) Create(ctx context.Context, actorID string, p *domain.Project) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_name": p.Name, "sprint_id": p.SprintID, "actor_id": actorID}
	defer observe(ctx, s.observer, "create-project", startedAt, fields, &err)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectCreated
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ManagerID != nil && p.ManagerAssignedAt == nil {
		p.ManagerAssignedAt = &now
	}
	if err = p.Validate(); err != nil {
		return invalid(err)
	}

	var sprint *domain.Sprint
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLProjectRepo(tx)

		sp, err := repository.NewSQLSprintRepo(tx).GetByID(ctx, p.SprintID)
		if errors.Is(err, repository.ErrNotFound) {
			return invalidf("sprint %s does not exist", p.SprintID)
		}
		if err != nil {
			return err
		}
		taken, err := projects.NameTaken(ctx, p.SprintID, p.Name, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return invalidf("project %q already exists in sprint %q", p.Name, sp.Name)
		}
		sprint = sp
		return projects.Create(ctx, p)
	})
	if err != nil {
		return err
	}

	fields["project_id"] = p.ID
	s.fanout.projectCreated(ctx, p, sprint)
	return nil
}
