package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	friday := time.Date(2026, 3, 13, 17, 30, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, WeekStart(friday))
	assert.Equal(t, monday, WeekStart(sunday))
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, "2026-03-09", WeekKey(friday))
}

func TestWeeklyConfig_CloseOpen(t *testing.T) {
	cfg := DefaultWeeklyConfig()
	wed := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	assert.False(t, cfg.IsClosed(wed))
	cfg.Close(wed)
	assert.True(t, cfg.IsClosed(wed.AddDate(0, 0, 2)))
	assert.Equal(t, map[string]bool{"2026-03-09": true}, cfg.ClosedWeeks)

	cfg.Open(wed)
	assert.False(t, cfg.IsClosed(wed))
	assert.Empty(t, cfg.ClosedWeeks)
}

func TestWeeklyConfig_PastCutoff(t *testing.T) {
	cfg := DefaultWeeklyConfig()

	before, err := cfg.PastCutoff(time.Date(2026, 3, 13, 8, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, before)

	at, err := cfg.PastCutoff(time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, at)

	cfg.CutoffTime = "9am"
	_, err = cfg.PastCutoff(testNow)
	assert.Error(t, err)
}

func TestSprint_ValidateAndInProgress(t *testing.T) {
	s := &Sprint{
		Name:         "Sprint 12",
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		DurationDays: 12,
	}
	require.NoError(t, s.Validate())
	assert.True(t, s.InProgress(time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC)))
	assert.False(t, s.InProgress(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))

	s.DurationDays = 0
	assert.Error(t, s.Validate())
}
