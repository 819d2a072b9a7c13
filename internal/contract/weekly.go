package contract

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// WeekRequest names a day in the week to close or open. An empty date
// means today.
type WeekRequest struct {
	Date string `json:"date"`
}

func (r WeekRequest) Day(now time.Time) (time.Time, error) {
	if r.Date == "" {
		return now, nil
	}
	d, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", r.Date)
	}
	return d, nil
}

type WeekStatus struct {
	Week   string `json:"week"`
	Closed bool   `json:"closed"`
}

func NewWeekStatus(day time.Time, closed bool) WeekStatus {
	return WeekStatus{Week: domain.WeekKey(day), Closed: closed}
}
