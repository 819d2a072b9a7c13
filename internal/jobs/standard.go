package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/service"
)

const (
	DeadlineScan    = "deadline_scan"
	SprintRollover  = "sprint_rollover"
	WeeklyAutoClose = "weekly_auto_close"
)

// Specs holds the cron expression of each standard job.
type Specs struct {
	DeadlineScan    string
	SprintRollover  string
	WeeklyAutoClose string
}

func DefaultSpecs() Specs {
	return Specs{
		DeadlineScan:    "*/1 * * * *",
		SprintRollover:  "0 3 * * *",
		WeeklyAutoClose: "*/1 * * * *",
	}
}

// Standard builds the three sweeps the server schedules.
func Standard(specs Specs, sprints service.SprintService, deadlines service.DeadlineService, weekly service.WeeklyService, logger *slog.Logger) []Job {
	if logger == nil {
		logger = slog.Default()
	}
	return []Job{
		{
			Name:    DeadlineScan,
			Spec:    specs.DeadlineScan,
			Timeout: time.Minute,
			Run: func(ctx context.Context) error {
				res, err := deadlines.Scan(ctx)
				if err != nil {
					return err
				}
				if res.Notified > 0 {
					logger.InfoContext(ctx, "deadline notices sent", "checked", res.Checked, "notified", res.Notified)
				}
				return nil
			},
		},
		{
			Name:    SprintRollover,
			Spec:    specs.SprintRollover,
			Timeout: 5 * time.Minute,
			Run: func(ctx context.Context) error {
				res, err := sprints.FinalizeDue(ctx)
				if err != nil {
					return err
				}
				logger.InfoContext(ctx, "sprint rollover sweep",
					"replicated", res.Replicated,
					"without_destination", res.WithoutDestination,
					"failed", res.Failed,
				)
				if res.Failed > 0 {
					return fmt.Errorf("%d sprints failed to finalize", res.Failed)
				}
				return nil
			},
		},
		{
			Name:    WeeklyAutoClose,
			Spec:    specs.WeeklyAutoClose,
			Timeout: 30 * time.Second,
			Run: func(ctx context.Context) error {
				_, err := weekly.AutoClose(ctx)
				return err
			},
		},
	}
}

// Register adds every job to r.
func Register(r *Runner, jobs []Job) error {
	for _, j := range jobs {
		if err := r.Add(j); err != nil {
			return err
		}
	}
	return nil
}
