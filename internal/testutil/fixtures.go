package testutil

import (
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/google/uuid"
)

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithName(first, last string) UserOption {
	return func(u *domain.User) {
		u.FirstName = first
		u.LastName = last
	}
}

func Inactive() UserOption {
	return func(u *domain.User) {
		u.IsActive = false
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      domain.RoleDeveloper,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Sprint options
type SprintOption func(*domain.Sprint)

func Finalized() SprintOption {
	return func(s *domain.Sprint) {
		s.Finalized = true
	}
}

func WithSupervisor(id string) SprintOption {
	return func(s *domain.Sprint) {
		s.SupervisorID = &id
	}
}

// NewTestSprint creates a sprint starting on start and lasting days days.
func NewTestSprint(name string, start time.Time, days int, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	s := &domain.Sprint{
		ID:           uuid.New().String(),
		Name:         name,
		StartDate:    domain.Day(start),
		EndDate:      domain.Day(start).AddDate(0, 0, days-1),
		DurationDays: days,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project options
type ProjectOption func(*domain.Project)

func WithManager(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ManagerID = &id
	}
}

func WithDeveloper(id string) ProjectOption {
	return func(p *domain.Project) {
		p.DeveloperID = &id
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithDeliveredAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.DeliveredAt = &t
	}
}

func NewTestProject(sprintID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New().String(),
		SprintID:    sprintID,
		Name:        name,
		Description: name + " description",
		Status:      domain.ProjectInDevelopment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Card options
type CardOption func(*domain.Card)

func WithCardStatus(s domain.CardStatus) CardOption {
	return func(c *domain.Card) {
		c.Status = s
	}
}

func WithAssignee(id string) CardOption {
	return func(c *domain.Card) {
		c.AssigneeID = &id
	}
}

func WithCreator(id string) CardOption {
	return func(c *domain.Card) {
		c.CreatorID = &id
	}
}

func WithArea(a domain.Area) CardOption {
	return func(c *domain.Card) {
		c.Area = a
	}
}

func WithEndAt(t time.Time) CardOption {
	return func(c *domain.Card) {
		c.EndAt = &t
	}
}

func WithComplexity(cx domain.Complexity) CardOption {
	return func(c *domain.Card) {
		c.Complexity = cx
	}
}

func WithComment(s string) CardOption {
	return func(c *domain.Card) {
		c.Comment = s
	}
}

func NewTestCard(projectID, name string, opts ...CardOption) *domain.Card {
	now := time.Now().UTC()
	c := &domain.Card{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        name,
		Description: name + " description",
		Area:        domain.AreaBackend,
		Type:        domain.TypeFeature,
		Status:      domain.CardToDevelop,
		Priority:    domain.PriorityMedium,
		Complexity:  domain.Complexity{}.Normalize(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestTodo creates a pending todo on cardID.
func NewTestTodo(cardID, label string, order int, original bool) *domain.CardTodo {
	now := time.Now().UTC()
	return &domain.CardTodo{
		ID:         uuid.New().String(),
		CardID:     cardID,
		Label:      label,
		IsOriginal: original,
		Status:     domain.TodoPending,
		Order:      order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
