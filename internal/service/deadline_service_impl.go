package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

// deadlineRepeatWindow suppresses a deadline notice of the same kind for
// the same card.
const deadlineRepeatWindow = 2 * time.Hour

type deadlineWindow struct {
	kind     domain.NotificationType
	min, max time.Duration
}

// Windows are checked in order; the first match wins.
var deadlineWindows = []deadlineWindow{
	{domain.NotifyCardDue24h, 23*time.Hour + 50*time.Minute, 24*time.Hour + 10*time.Minute},
	{domain.NotifyCardDue1h, 50 * time.Minute, time.Hour + 10*time.Minute},
	{domain.NotifyCardDue10min, 5 * time.Minute, 15 * time.Minute},
}

// ClassifyDeadline returns the notice due for a card ending at endAt, or
// false when none is.
func ClassifyDeadline(endAt, now time.Time) (domain.NotificationType, bool) {
	remaining := endAt.Sub(now)
	if remaining < 0 {
		return domain.NotifyCardOverdue, true
	}
	for _, w := range deadlineWindows {
		if remaining >= w.min && remaining <= w.max {
			return w.kind, true
		}
	}
	return "", false
}

type deadlineService struct {
	cards         repository.CardRepo
	projects      repository.ProjectRepo
	notifications repository.NotificationRepo
	fanout        *Fanout
	now           Clock
	logger        *slog.Logger
	observer      UseCaseObserver
}

func NewDeadlineService(
	cards repository.CardRepo,
	projects repository.ProjectRepo,
	notifications repository.NotificationRepo,
	fanout *Fanout,
	clock Clock,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) DeadlineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &deadlineService{
		cards:         cards,
		projects:      projects,
		notifications: notifications,
		fanout:        fanout,
		now:           clockOrNow(clock),
		logger:        logger,
		observer:      useCaseObserverOrNoop(observers),
	}
}

// Scan notifies about every open card whose deadline has passed or falls in
// one of the reminder windows.
func (s *deadlineService) Scan(ctx context.Context) (result *ScanResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "deadline-scan", startedAt, fields, &err)

	open, err := s.cards.ListOpenWithDeadline(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cards with deadlines: %w", err)
	}

	now := s.now()
	since := now.Add(-deadlineRepeatWindow)
	projects := map[string]*domain.Project{}
	result = &ScanResult{}
	for _, c := range open {
		result.Checked++
		kind, due := ClassifyDeadline(*c.EndAt, now)
		if !due {
			continue
		}

		seen, err := s.notifications.ExistsSince(ctx, c.ID, kind, since)
		if err != nil {
			return nil, err
		}
		if seen {
			continue
		}

		p, ok := projects[c.ProjectID]
		if !ok {
			p, err = s.projects.GetByID(ctx, c.ProjectID)
			if err != nil {
				s.logger.WarnContext(ctx, "deadline scan skipping card", "card_id", c.ID, "error", err)
				continue
			}
			projects[c.ProjectID] = p
		}
		if s.fanout.deadline(ctx, c, p, kind) > 0 {
			result.Notified++
		}
	}

	fields["checked"] = result.Checked
	fields["notified"] = result.Notified
	return result, nil
}
