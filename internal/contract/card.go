// Package contract holds the JSON request and response shapes of the HTTP
// API and their mapping to domain types.
package contract

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// CardRequest creates a card or patches one. Nil fields are left alone on
// update.
type CardRequest struct {
	ProjectID   *string            `json:"project_id"`
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	ScriptURL   *string            `json:"script_url"`
	Area        *string            `json:"area"`
	Type        *string            `json:"type"`
	AssigneeID  *string            `json:"assignee_id"`
	Status      *string            `json:"status"`
	Priority    *string            `json:"priority"`
	StartAt     *string            `json:"start_at"`
	EndAt       *string            `json:"end_at"`
	Complexity  *domain.Complexity `json:"complexity"`
	Comment     *string            `json:"comment"`
}

// Apply copies the set fields onto c. Empty strings clear the optional
// references and dates.
func (r CardRequest) Apply(c *domain.Card) error {
	setStr(&c.ProjectID, r.ProjectID)
	setStr(&c.Name, r.Name)
	setStr(&c.Description, r.Description)
	setStr(&c.Comment, r.Comment)
	if r.ScriptURL != nil {
		c.ScriptURL = optional(*r.ScriptURL)
	}
	if r.AssigneeID != nil {
		c.AssigneeID = optional(*r.AssigneeID)
	}
	if r.Area != nil {
		c.Area = domain.Area(*r.Area)
	}
	if r.Type != nil {
		c.Type = domain.CardType(*r.Type)
	}
	if r.Status != nil {
		c.Status = domain.CardStatus(*r.Status)
	}
	if r.Priority != nil {
		c.Priority = domain.Priority(*r.Priority)
	}
	if r.Complexity != nil {
		c.Complexity = *r.Complexity
	}
	var err error
	if r.StartAt != nil {
		if c.StartAt, err = parseTime("start_at", *r.StartAt); err != nil {
			return err
		}
	}
	if r.EndAt != nil {
		if c.EndAt, err = parseTime("end_at", *r.EndAt); err != nil {
			return err
		}
	}
	return nil
}

type Card struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ScriptURL   *string           `json:"script_url"`
	Area        string            `json:"area"`
	AreaDisplay string            `json:"area_display"`
	Type        string            `json:"type"`
	AssigneeID  *string           `json:"assignee_id"`
	CreatorID   *string           `json:"creator_id"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	StartAt     *string           `json:"start_at"`
	EndAt       *string           `json:"end_at"`
	Complexity  domain.Complexity `json:"complexity"`
	Comment     string            `json:"comment"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func NewCard(c *domain.Card) Card {
	return Card{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Name:        c.Name,
		Description: c.Description,
		ScriptURL:   c.ScriptURL,
		Area:        string(c.Area),
		AreaDisplay: c.Area.Label(),
		Type:        string(c.Type),
		AssigneeID:  c.AssigneeID,
		CreatorID:   c.CreatorID,
		Status:      string(c.Status),
		Priority:    string(c.Priority),
		StartAt:     formatOptional(c.StartAt),
		EndAt:       formatOptional(c.EndAt),
		Complexity:  c.Complexity.Normalize(),
		Comment:     c.Comment,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CardUpdate is the response of a card update.
type CardUpdate struct {
	Card    Card     `json:"card"`
	Change  string   `json:"change"`
	Changes []string `json:"changes"`
}

func NewCardUpdate(c *domain.Card, change changes.CardChange) CardUpdate {
	list := change.Changes
	if list == nil {
		list = []string{}
	}
	return CardUpdate{Card: NewCard(c), Change: change.Kind.String(), Changes: list}
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be RFC 3339, got %q", field, s)
	}
	return &t, nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
