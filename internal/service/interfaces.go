package service

import (
	"context"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

// Clock returns the current time. Services derive "today" from it in the
// clock's location.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

type SprintService interface {
	Create(ctx context.Context, actorID string, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	List(ctx context.Context) ([]*domain.Sprint, error)
	// NextSprint returns the sprint that would receive s's open cards, or
	// nil.
	NextSprint(ctx context.Context, s *domain.Sprint) (*domain.Sprint, error)
	Finalize(ctx context.Context, sprintID, actorID string) (*FinalizeResult, error)
	// FinalizeDue finalizes every unfinalized sprint that has ended.
	FinalizeDue(ctx context.Context) (*SweepResult, error)
}

// FinalizeResult reports one rollover.
type FinalizeResult struct {
	SprintID         string
	AlreadyFinalized bool
	DestinationID    string
	DestinationName  string
	ProjectsCreated  int
	CardsCopied      int
}

// SweepResult counts the outcomes of a FinalizeDue pass.
type SweepResult struct {
	Replicated         int
	WithoutDestination int
	Failed             int
}

type ProjectService interface {
	Create(ctx context.Context, actorID string, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Project, error)
}

type CardService interface {
	Create(ctx context.Context, actorID string, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error)
	// Update saves c and returns what changed relative to the stored card.
	Update(ctx context.Context, actorID string, c *domain.Card) (changes.CardChange, error)
	Delete(ctx context.Context, actorID, cardID string) error
	Logs(ctx context.Context, cardID string) ([]*domain.CardLog, error)
}

type TodoService interface {
	Create(ctx context.Context, actorID string, t *domain.CardTodo) error
	GetByID(ctx context.Context, id string) (*domain.CardTodo, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.CardTodo, error)
	Update(ctx context.Context, actorID string, t *domain.CardTodo) (changes.TodoChange, error)
	Delete(ctx context.Context, actorID, todoID string) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ChangeRole(ctx context.Context, userID string, role domain.Role) error
	// RequireSupervisor returns the user when they may finalize sprints and
	// manage weeks, ErrForbidden otherwise.
	RequireSupervisor(ctx context.Context, userID string) (*domain.User, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, f repository.NotificationFilter) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	UnreadCounts(ctx context.Context, userID string) (domain.UnreadCounts, error)
}

type DeadlineService interface {
	Scan(ctx context.Context) (*ScanResult, error)
}

// ScanResult counts the cards a deadline scan looked at and notified about.
type ScanResult struct {
	Checked  int
	Notified int
}

type WeeklyService interface {
	Get(ctx context.Context) (*domain.WeeklyPriorityConfig, error)
	Update(ctx context.Context, actorID, cutoff string, autoClose bool) (*domain.WeeklyPriorityConfig, error)
	CloseWeek(ctx context.Context, actorID string, day time.Time) error
	OpenWeek(ctx context.Context, actorID string, day time.Time) error
	IsWeekClosed(ctx context.Context, day time.Time) (bool, error)
	// AutoClose closes the current week on Friday after the cutoff and
	// reports whether it did.
	AutoClose(ctx context.Context) (bool, error)
}
