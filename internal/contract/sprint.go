package contract

import (
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/service"
)

type Sprint struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DurationDays int     `json:"duration_days"`
	SupervisorID *string `json:"supervisor_id"`
	Finalized    bool    `json:"finalized"`
}

func NewSprint(s *domain.Sprint) Sprint {
	return Sprint{
		ID:           s.ID,
		Name:         s.Name,
		StartDate:    s.StartDate.Format(domain.DateLayout),
		EndDate:      s.EndDate.Format(domain.DateLayout),
		DurationDays: s.DurationDays,
		SupervisorID: s.SupervisorID,
		Finalized:    s.Finalized,
	}
}

// NextSprint answers which sprint would receive a sprint's open cards.
// Next is nil when there is none.
type NextSprint struct {
	SprintID string  `json:"sprint_id"`
	Next     *Sprint `json:"next"`
}

type Finalize struct {
	SprintID         string `json:"sprint_id"`
	AlreadyFinalized bool   `json:"already_finalized"`
	DestinationID    string `json:"destination_id,omitempty"`
	DestinationName  string `json:"destination_name,omitempty"`
	ProjectsCreated  int    `json:"projects_created"`
	CardsCopied      int    `json:"cards_copied"`
}

func NewFinalize(r *service.FinalizeResult) Finalize {
	return Finalize{
		SprintID:         r.SprintID,
		AlreadyFinalized: r.AlreadyFinalized,
		DestinationID:    r.DestinationID,
		DestinationName:  r.DestinationName,
		ProjectsCreated:  r.ProjectsCreated,
		CardsCopied:      r.CardsCopied,
	}
}
