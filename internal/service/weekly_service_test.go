package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekly_CloseAndOpenRequireSupervisor(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	sup := e.user(t, "sup", testutil.WithRole(domain.RoleSupervisor))
	dev := e.user(t, "dev")
	svc := NewWeeklyService(e.weekly, e.users, fixedClock(testNow), quietLogger)

	wednesday := testutil.Date(2026, 3, 11)
	assert.ErrorIs(t, svc.CloseWeek(ctx, dev.ID, wednesday), ErrForbidden)
	assert.ErrorIs(t, svc.CloseWeek(ctx, "", wednesday), ErrForbidden)

	require.NoError(t, svc.CloseWeek(ctx, sup.ID, wednesday))
	closed, err := svc.IsWeekClosed(ctx, testutil.Date(2026, 3, 9))
	require.NoError(t, err)
	assert.True(t, closed, "any day of the week maps to its Monday")

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.ClosedWeeks["2026-03-09"])

	require.NoError(t, svc.OpenWeek(ctx, sup.ID, testutil.Date(2026, 3, 15)))
	closed, err = svc.IsWeekClosed(ctx, wednesday)
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestWeekly_Update(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.user(t, "admin", testutil.WithRole(domain.RoleAdmin))
	svc := NewWeeklyService(e.weekly, e.users, fixedClock(testNow), quietLogger)

	_, err := svc.Update(ctx, admin.ID, "9am", true)
	assert.ErrorIs(t, err, ErrValidation)

	cfg, err := svc.Update(ctx, admin.ID, "14:30:00", false)
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", cfg.CutoffTime)
	assert.False(t, cfg.AutoClose)

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", stored.CutoffTime)
}

func TestWeekly_AutoClose(t *testing.T) {
	friday := func(h, m int) time.Time { return time.Date(2026, 3, 13, h, m, 0, 0, time.UTC) }
	tests := []struct {
		name      string
		now       time.Time
		autoClose bool
		want      bool
	}{
		{"friday after cutoff", friday(9, 30), true, true},
		{"friday at cutoff", friday(9, 0), true, true},
		{"friday before cutoff", friday(8, 59), true, false},
		{"thursday", time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC), true, false},
		{"disabled", friday(17, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			ctx := context.Background()
			cfg, err := e.weekly.Get(ctx)
			require.NoError(t, err)
			cfg.AutoClose = tt.autoClose
			require.NoError(t, e.weekly.Save(ctx, cfg))

			svc := NewWeeklyService(e.weekly, e.users, fixedClock(tt.now), quietLogger)
			closed, err := svc.AutoClose(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, closed)

			isClosed, err := svc.IsWeekClosed(ctx, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, isClosed)

			if tt.want {
				again, err := svc.AutoClose(ctx)
				require.NoError(t, err)
				assert.False(t, again, "an already closed week is left alone")
			}
		})
	}
}
