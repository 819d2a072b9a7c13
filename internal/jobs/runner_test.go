package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunner_RunOnce(t *testing.T) {
	r := NewRunner(time.UTC, quiet)
	calls := 0
	require.NoError(t, r.Add(Job{
		Name: "count",
		Spec: "*/5 * * * *",
		Run: func(ctx context.Context) error {
			calls++
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "jobs always run with a timeout")
			return nil
		},
	}))

	require.NoError(t, r.RunOnce(context.Background(), "count"))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, r.RunOnce(context.Background(), "nope"), ErrUnknownJob)
}

func TestRunner_ErrorsAndPanicsAreReturned(t *testing.T) {
	r := NewRunner(time.UTC, quiet)
	boom := errors.New("boom")
	require.NoError(t, r.Add(Job{Name: "fails", Spec: "@hourly", Run: func(context.Context) error { return boom }}))
	require.NoError(t, r.Add(Job{Name: "panics", Spec: "@hourly", Run: func(context.Context) error { panic("bad state") }}))

	assert.ErrorIs(t, r.RunOnce(context.Background(), "fails"), boom)
	err := r.RunOnce(context.Background(), "panics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad state")
}

func TestRunner_AddValidates(t *testing.T) {
	r := NewRunner(time.UTC, quiet)
	noop := func(context.Context) error { return nil }

	assert.Error(t, r.Add(Job{Name: "bad", Spec: "every minute", Run: noop}))
	assert.Error(t, r.Add(Job{Name: "", Spec: "* * * * *", Run: noop}))
	require.NoError(t, r.Add(Job{Name: "a", Spec: "* * * * *", Run: noop}))
	assert.Error(t, r.Add(Job{Name: "a", Spec: "* * * * *", Run: noop}), "names are unique")
	assert.Equal(t, []string{"a"}, r.Names())
}

func TestRunner_StartStop(t *testing.T) {
	r := NewRunner(time.UTC, quiet)
	require.NoError(t, r.Add(Job{Name: "a", Spec: "* * * * *", Run: func(context.Context) error { return nil }}))
	r.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, r.Stop(ctx))
}

type fakeSprints struct {
	service.SprintService
	sweep *service.SweepResult
}

func (f *fakeSprints) FinalizeDue(context.Context) (*service.SweepResult, error) {
	return f.sweep, nil
}

type fakeDeadlines struct{ scans int }

func (f *fakeDeadlines) Scan(context.Context) (*service.ScanResult, error) {
	f.scans++
	return &service.ScanResult{Checked: 2, Notified: 1}, nil
}

type fakeWeekly struct {
	service.WeeklyService
	closes int
}

func (f *fakeWeekly) AutoClose(context.Context) (bool, error) {
	f.closes++
	return true, nil
}

func TestStandardJobs(t *testing.T) {
	sprints := &fakeSprints{sweep: &service.SweepResult{Replicated: 1}}
	deadlines := &fakeDeadlines{}
	weekly := &fakeWeekly{}
	r := NewRunner(time.UTC, quiet)
	require.NoError(t, Register(r, Standard(DefaultSpecs(), sprints, deadlines, weekly, quiet)))
	assert.Equal(t, []string{DeadlineScan, SprintRollover, WeeklyAutoClose}, r.Names())

	ctx := context.Background()
	for _, name := range r.Names() {
		require.NoError(t, r.RunOnce(ctx, name))
	}
	assert.Equal(t, 1, deadlines.scans)
	assert.Equal(t, 1, weekly.closes)

	sprints.sweep = &service.SweepResult{Failed: 2}
	assert.Error(t, r.RunOnce(ctx, SprintRollover), "failed sprints surface as a job error")
}
