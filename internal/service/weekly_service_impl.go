package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

type weeklyService struct {
	configs  repository.WeeklyConfigRepo
	users    repository.UserRepo
	now      Clock
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewWeeklyService(
	configs repository.WeeklyConfigRepo,
	users repository.UserRepo,
	clock Clock,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) WeeklyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &weeklyService{
		configs:  configs,
		users:    users,
		now:      clockOrNow(clock),
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *weeklyService) Get(ctx context.Context) (*domain.WeeklyPriorityConfig, error) {
	return s.configs.Get(ctx)
}

func (s *weeklyService) Update(ctx context.Context, actorID, cutoff string, autoClose bool) (cfg *domain.WeeklyPriorityConfig, err error) {
	startedAt := time.Now()
	fields := map[string]any{"actor_id": actorID, "cutoff": cutoff, "auto_close": autoClose}
	defer observe(ctx, s.observer, "update-weekly-config", startedAt, fields, &err)

	if _, err = requireRole(ctx, s.users, actorID, domain.Role.CanFinalizeSprints); err != nil {
		return nil, err
	}
	if _, perr := time.Parse(domain.TimeOfDayLayout, cutoff); perr != nil {
		return nil, invalidf("cutoff time must be HH:MM:SS, got %q", cutoff)
	}

	cfg, err = s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.CutoffTime = cutoff
	cfg.AutoClose = autoClose
	cfg.UpdatedAt = s.now().UTC()
	if err = s.configs.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *weeklyService) CloseWeek(ctx context.Context, actorID string, day time.Time) error {
	return s.setWeek(ctx, "close-week", actorID, day, true)
}

func (s *weeklyService) OpenWeek(ctx context.Context, actorID string, day time.Time) error {
	return s.setWeek(ctx, "open-week", actorID, day, false)
}

func (s *weeklyService) setWeek(ctx context.Context, name, actorID string, day time.Time, closed bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"actor_id": actorID, "week": domain.WeekKey(day)}
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	if _, err = requireRole(ctx, s.users, actorID, domain.Role.CanFinalizeSprints); err != nil {
		return err
	}
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return err
	}
	if closed {
		cfg.Close(day)
	} else {
		cfg.Open(day)
	}
	cfg.UpdatedAt = s.now().UTC()
	return s.configs.Save(ctx, cfg)
}

func (s *weeklyService) IsWeekClosed(ctx context.Context, day time.Time) (bool, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return false, err
	}
	return cfg.IsClosed(day), nil
}

// AutoClose closes the current week when it is Friday, auto close is on,
// the week is still open and the cutoff time has passed.
func (s *weeklyService) AutoClose(ctx context.Context) (bool, error) {
	now := s.now()
	if now.Weekday() != time.Friday {
		return false, nil
	}
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return false, err
	}
	if !cfg.AutoClose || cfg.IsClosed(now) {
		return false, nil
	}
	past, err := cfg.PastCutoff(now)
	if err != nil {
		return false, err
	}
	if !past {
		return false, nil
	}

	cfg.Close(now)
	cfg.UpdatedAt = now.UTC()
	if err := s.configs.Save(ctx, cfg); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "weekly priorities closed", "week", domain.WeekKey(now))
	return true, nil
}
