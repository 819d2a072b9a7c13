package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Sprint struct {
	ID           string
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
	SupervisorID *string
	// Finalized only ever goes from false to true.
	Finalized bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the date window and duration.
func (s *Sprint) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sprint name is required")
	}
	if s.DurationDays < 1 {
		return fmt.Errorf("sprint duration must be at least 1 day, got %d", s.DurationDays)
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("sprint end date %s is before start date %s",
			s.EndDate.Format(DateLayout), s.StartDate.Format(DateLayout))
	}
	return nil
}

// InProgress reports whether day falls inside the sprint window, inclusive.
func (s *Sprint) InProgress(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(s.StartDate)) && !d.After(Day(s.EndDate))
}

// Day truncates t to midnight UTC of its calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
