package domain

import (
	"fmt"
	"strings"
	"time"
)

type Card struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	ScriptURL   *string
	Area        Area
	Type        CardType
	AssigneeID  *string
	CreatorID   *string
	Status      CardStatus
	Priority    Priority
	StartAt     *time.Time
	EndAt       *time.Time
	Complexity  Complexity
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsClosed reports whether the card is done or not viable.
func (c *Card) IsClosed() bool {
	return c.Status.IsClosed()
}

// ApplyDefaults fills the zero-valued enums and normalizes complexity.
func (c *Card) ApplyDefaults() {
	if c.Area == "" {
		c.Area = AreaBackend
	}
	if c.Status == "" {
		c.Status = CardToDevelop
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Type == "" {
		c.Type = TypeFeature
	}
	c.Complexity = c.Complexity.Normalize()
}

// Validate checks required fields and the closed enums. Card types are an
// open set and are not checked.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("card name is required")
	}
	if c.ProjectID == "" {
		return fmt.Errorf("card project is required")
	}
	if !c.Area.Valid() {
		return fmt.Errorf("invalid area %q", c.Area)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("invalid card status %q", c.Status)
	}
	if !c.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", c.Priority)
	}
	if c.StartAt != nil && c.EndAt != nil && c.EndAt.Before(*c.StartAt) {
		return fmt.Errorf("card end date is before start date")
	}
	return nil
}

// CopyTo returns a copy of c that belongs to projectID. Every field is kept;
// creatorID replaces the creator when non-empty.
func (c *Card) CopyTo(id, projectID, creatorID string, now time.Time) *Card {
	cp := *c
	cp.ID = id
	cp.ProjectID = projectID
	cp.ScriptURL = copyStr(c.ScriptURL)
	cp.AssigneeID = copyStr(c.AssigneeID)
	cp.CreatorID = copyStr(c.CreatorID)
	if creatorID != "" {
		cp.CreatorID = &creatorID
	}
	cp.StartAt = copyTime(c.StartAt)
	cp.EndAt = copyTime(c.EndAt)
	cp.Complexity = c.Complexity.Clone()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// CardSnapshot is the pre-save view of a card that change detection
// compares against.
type CardSnapshot struct {
	Name        string
	Description string
	Status      CardStatus
	Priority    Priority
	Area        Area
	Type        CardType
	AssigneeID  *string
	StartAt     *time.Time
	EndAt       *time.Time
	Complexity  Complexity
	Comment     string
}
