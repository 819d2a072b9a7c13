package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID          string
	SprintID    string
	Name        string
	Description string
	ManagerID   *string
	DeveloperID *string
	Status      ProjectStatus

	EvaluatedAt          *time.Time
	ManagerAssignedAt    *time.Time
	DevelopmentStartedAt *time.Time
	DeliveredAt          *time.Time
	ValidatedAt          *time.Time
	PostponeRequestedAt  *time.Time
	NewExpectedDate      *time.Time
	PostponeApproved     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSuggestions reports whether the project is the demand bucket.
func (p *Project) IsSuggestions() bool {
	return p.Name == SuggestionsProjectName
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.SprintID == "" {
		return fmt.Errorf("project sprint is required")
	}
	if p.Status != "" && !p.Status.Valid() {
		return fmt.Errorf("invalid project status %q", p.Status)
	}
	return nil
}

// CarryOver builds the fresh project that continues p in another sprint:
// same name, description and people, no milestones.
func (p *Project) CarryOver(id, sprintID string, now time.Time) *Project {
	return &Project{
		ID:          id,
		SprintID:    sprintID,
		Name:        p.Name,
		Description: p.Description,
		ManagerID:   copyStr(p.ManagerID),
		DeveloperID: copyStr(p.DeveloperID),
		Status:      ProjectCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
