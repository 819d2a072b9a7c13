package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/google/uuid"
)

type sprintService struct {
	sprints  repository.SprintRepo
	uow      db.UnitOfWork
	fanout   *Fanout
	now      Clock
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewSprintService(
	sprints repository.SprintRepo,
	uow db.UnitOfWork,
	fanout *Fanout,
	clock Clock,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) SprintService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sprintService{
		sprints:  sprints,
		uow:      uow,
		fanout:   fanout,
		now:      clockOrNow(clock),
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sprintService) Create(ctx context.Context, actorID string, sp *domain.Sprint) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"sprint_name": sp.Name}
	defer observe(ctx, s.observer, "create-sprint", startedAt, fields, &err)

	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	sp.StartDate = domain.Day(sp.StartDate)
	switch {
	case sp.EndDate.IsZero() && sp.DurationDays > 0:
		sp.EndDate = sp.StartDate.AddDate(0, 0, sp.DurationDays-1)
	case sp.DurationDays == 0 && !sp.EndDate.IsZero():
		sp.DurationDays = int(domain.Day(sp.EndDate).Sub(sp.StartDate).Hours()/24) + 1
	}
	sp.EndDate = domain.Day(sp.EndDate)
	if sp.SupervisorID == nil && actorID != "" {
		sp.SupervisorID = &actorID
	}
	now := s.now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	sp.Finalized = false
	if err = sp.Validate(); err != nil {
		return invalid(err)
	}

	if err = s.sprints.Create(ctx, sp); err != nil {
		return err
	}
	fields["sprint_id"] = sp.ID
	s.fanout.sprintCreated(ctx, sp)
	return nil
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

func (s *sprintService) List(ctx context.Context) ([]*domain.Sprint, error) {
	return s.sprints.List(ctx)
}

func (s *sprintService) NextSprint(ctx context.Context, sp *domain.Sprint) (*domain.Sprint, error) {
	return s.nextSprint(ctx, s.sprints, sp)
}

// nextSprint prefers the sprint in progress today, then the first one that
// starts after sp ends.
func (s *sprintService) nextSprint(ctx context.Context, sprints repository.SprintRepo, sp *domain.Sprint) (*domain.Sprint, error) {
	current, err := sprints.FindInProgress(ctx, sp.ID, domain.Day(s.now()))
	if err != nil {
		return nil, err
	}
	if current != nil {
		return current, nil
	}
	return sprints.FindFirstStartingAfter(ctx, sp.ID, sp.EndDate)
}

func (s *sprintService) Finalize(ctx context.Context, sprintID, actorID string) (result *FinalizeResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"sprint_id": sprintID}
	defer observe(ctx, s.observer, "finalize-sprint", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sprints := repository.NewSQLSprintRepo(tx)

		sp, err := sprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if sp.Finalized {
			result = &FinalizeResult{SprintID: sp.ID, AlreadyFinalized: true}
			return nil
		}

		dest, err := s.nextSprint(ctx, sprints, sp)
		if err != nil {
			return fmt.Errorf("finding destination sprint: %w", err)
		}
		if dest == nil {
			return ErrNoDestination
		}

		won, err := sprints.MarkFinalized(ctx, sp.ID)
		if err != nil {
			return err
		}
		if !won {
			result = &FinalizeResult{SprintID: sp.ID, AlreadyFinalized: true}
			return nil
		}

		creator, err := actorRef(ctx, repository.NewSQLUserRepo(tx), actorID)
		if err != nil {
			return err
		}
		result, err = replicate(ctx, tx, sp, dest, creator, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	fields["already_finalized"] = result.AlreadyFinalized
	if !result.AlreadyFinalized {
		fields["destination_id"] = result.DestinationID
		fields["projects_created"] = result.ProjectsCreated
		fields["cards_copied"] = result.CardsCopied
		s.logger.InfoContext(ctx, "sprint finalized",
			"sprint_id", sprintID,
			"destination_id", result.DestinationID,
			"projects_created", result.ProjectsCreated,
			"cards_copied", result.CardsCopied,
		)
	}
	return result, nil
}

// replicate copies every open card of src into fresh projects of dest. A
// project with no open cards is not carried over.
func replicate(ctx context.Context, tx db.DBTX, src, dest *domain.Sprint, creator *string, now time.Time) (*FinalizeResult, error) {
	projects := repository.NewSQLProjectRepo(tx)
	cards := repository.NewSQLCardRepo(tx)

	result := &FinalizeResult{
		SprintID:        src.ID,
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
	}

	list, err := projects.ListBySprint(ctx, src.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		open, err := cards.ListOpenByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(open) == 0 {
			continue
		}

		carried := p.CarryOver(uuid.New().String(), dest.ID, now)
		if err := projects.Create(ctx, carried); err != nil {
			return nil, fmt.Errorf("carrying over project %q: %w", p.Name, err)
		}
		result.ProjectsCreated++

		for _, c := range open {
			var creatorID string
			if creator != nil {
				creatorID = *creator
			}
			cp := c.CopyTo(uuid.New().String(), carried.ID, creatorID, now)
			if err := cards.Create(ctx, cp); err != nil {
				return nil, fmt.Errorf("copying card %q: %w", c.Name, err)
			}
			result.CardsCopied++
		}
	}
	return result, nil
}

func (s *sprintService) FinalizeDue(ctx context.Context) (*SweepResult, error) {
	due, err := s.sprints.ListDueForFinalization(ctx, domain.Day(s.now()))
	if err != nil {
		return nil, fmt.Errorf("listing sprints due for finalization: %w", err)
	}

	sweep := &SweepResult{}
	for _, sp := range due {
		res, err := s.Finalize(ctx, sp.ID, "")
		switch {
		case errors.Is(err, ErrNoDestination):
			if _, markErr := s.sprints.MarkFinalized(ctx, sp.ID); markErr != nil {
				s.logger.ErrorContext(ctx, "marking sprint finalized", "sprint_id", sp.ID, "error", markErr)
				sweep.Failed++
				continue
			}
			s.logger.WarnContext(ctx, "sprint finalized without destination", "sprint_id", sp.ID, "sprint_name", sp.Name)
			sweep.WithoutDestination++
		case err != nil:
			s.logger.ErrorContext(ctx, "finalizing sprint", "sprint_id", sp.ID, "error", err)
			sweep.Failed++
		case !res.AlreadyFinalized:
			sweep.Replicated++
		}
	}
	return sweep, nil
}
