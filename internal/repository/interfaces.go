package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type UserRepo interface {
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListActive(ctx context.Context) ([]*domain.User, error)
	ListActiveByRoles(ctx context.Context, roles ...domain.Role) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	List(ctx context.Context) ([]*domain.Sprint, error)
	// Update writes everything except the finalized flag.
	Update(ctx context.Context, s *domain.Sprint) error
	// MarkFinalized flips finalized from false to true and reports whether
	// this call did it.
	MarkFinalized(ctx context.Context, id string) (bool, error)
	// FindInProgress returns the sprint other than excludeID whose window
	// contains day, earliest start first, or nil.
	FindInProgress(ctx context.Context, excludeID string, day time.Time) (*domain.Sprint, error)
	// FindFirstStartingAfter returns the earliest sprint other than excludeID
	// starting strictly after day, or nil.
	FindFirstStartingAfter(ctx context.Context, excludeID string, day time.Time) (*domain.Sprint, error)
	// ListDueForFinalization returns unfinalized sprints that ended before
	// day, by end date.
	ListDueForFinalization(ctx context.Context, day time.Time) ([]*domain.Sprint, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Project, error)
	NameTaken(ctx context.Context, sprintID, name, excludeID string) (bool, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error)
	ListOpenByProject(ctx context.Context, projectID string) ([]*domain.Card, error)
	// ListOpenWithDeadline returns open cards that have an end date.
	ListOpenWithDeadline(ctx context.Context) ([]*domain.Card, error)
	// ActiveNameTaken reports whether an open card of an unfinalized sprint
	// other than excludeID already uses name.
	ActiveNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
}

type TodoRepo interface {
	Create(ctx context.Context, t *domain.CardTodo) error
	GetByID(ctx context.Context, id string) (*domain.CardTodo, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.CardTodo, error)
	Update(ctx context.Context, t *domain.CardTodo) error
	Delete(ctx context.Context, id string) error
}

// NotificationFilter narrows a user's notification listing.
type NotificationFilter struct {
	// MineOnly drops sprint announcements.
	MineOnly   bool
	UnreadOnly bool
	Limit      int
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID string, f NotificationFilter) ([]*domain.Notification, error)
	// MarkRead marks one of userID's notifications read. Other users'
	// notifications are reported as not found.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	UnreadCounts(ctx context.Context, userID string) (domain.UnreadCounts, error)
	// ExistsSince reports whether a notification of type t about cardID was
	// created at or after since.
	ExistsSince(ctx context.Context, cardID string, t domain.NotificationType, since time.Time) (bool, error)
}

type CardLogRepo interface {
	Create(ctx context.Context, l *domain.CardLog) error
	ListByCard(ctx context.Context, cardID string) ([]*domain.CardLog, error)
}

type WeeklyConfigRepo interface {
	// Get returns the singleton config, creating it with defaults first.
	Get(ctx context.Context) (*domain.WeeklyPriorityConfig, error)
	Save(ctx context.Context, c *domain.WeeklyPriorityConfig) error
}
