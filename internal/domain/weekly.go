package domain

import (
	"fmt"
	"time"
)

const (
	TimeOfDayLayout   = "15:04:05"
	DefaultCutoffTime = "09:00:00"
)

// WeeklyPriorityConfig is the singleton that governs weekly priority
// closing.
type WeeklyPriorityConfig struct {
	CutoffTime  string
	AutoClose   bool
	ClosedWeeks map[string]bool
	UpdatedAt   time.Time
}

func DefaultWeeklyConfig() *WeeklyPriorityConfig {
	return &WeeklyPriorityConfig{
		CutoffTime:  DefaultCutoffTime,
		AutoClose:   true,
		ClosedWeeks: map[string]bool{},
	}
}

// WeekStart returns the Monday of day's week as a date.
func WeekStart(day time.Time) time.Time {
	d := Day(day)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekKey is the ClosedWeeks key for day's week.
func WeekKey(day time.Time) string {
	return WeekStart(day).Format(DateLayout)
}

func (c *WeeklyPriorityConfig) IsClosed(day time.Time) bool {
	return c.ClosedWeeks[WeekKey(day)]
}

func (c *WeeklyPriorityConfig) Close(day time.Time) {
	if c.ClosedWeeks == nil {
		c.ClosedWeeks = map[string]bool{}
	}
	c.ClosedWeeks[WeekKey(day)] = true
}

func (c *WeeklyPriorityConfig) Open(day time.Time) {
	delete(c.ClosedWeeks, WeekKey(day))
}

// Cutoff parses CutoffTime into an offset from midnight.
func (c *WeeklyPriorityConfig) Cutoff() (time.Duration, error) {
	t, err := time.Parse(TimeOfDayLayout, c.CutoffTime)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff time %q: %w", c.CutoffTime, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

// PastCutoff reports whether now's local time of day is at or after the
// cutoff.
func (c *WeeklyPriorityConfig) PastCutoff(now time.Time) (bool, error) {
	cutoff, err := c.Cutoff()
	if err != nil {
		return false, err
	}
	sinceMidnight := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute + time.Duration(now.Second())*time.Second
	return sinceMidnight >= cutoff, nil
}
