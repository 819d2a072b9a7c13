// Package jobs runs the periodic sweeps on a cron schedule.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrUnknownJob is returned by RunOnce for a name that was never added.
var ErrUnknownJob = errors.New("unknown job")

const defaultTimeout = time.Minute

// Job is a named unit of periodic work.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Runner schedules jobs and can run any of them on demand.
type Runner struct {
	mu     sync.Mutex
	cron   *cron.Cron
	jobs   map[string]Job
	order  []string
	logger *slog.Logger
}

func NewRunner(loc *time.Location, logger *slog.Logger) *Runner {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	return &Runner{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobs:   make(map[string]Job),
		logger: logger,
	}
}

// Add registers job under its standard five-field cron spec.
func (r *Runner) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("job needs a name and a run func")
	}
	if _, err := cron.ParseStandard(job.Spec); err != nil {
		return fmt.Errorf("parsing schedule for %s: %w", job.Name, err)
	}
	if job.Timeout <= 0 {
		job.Timeout = defaultTimeout
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.jobs[job.Name]; dup {
		return fmt.Errorf("job %s already added", job.Name)
	}
	if _, err := r.cron.AddFunc(job.Spec, func() {
		_ = r.execute(context.Background(), job)
	}); err != nil {
		return fmt.Errorf("scheduling %s: %w", job.Name, err)
	}
	r.jobs[job.Name] = job
	r.order = append(r.order, job.Name)
	return nil
}

// Names lists the registered jobs in the order they were added.
func (r *Runner) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// RunOnce runs the named job synchronously with its timeout.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	r.mu.Lock()
	job, ok := r.jobs[name]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return r.execute(ctx, job)
}

func (r *Runner) Start() {
	r.logger.Info("scheduler started", "jobs", r.Names())
	r.cron.Start()
}

// Stop stops scheduling and waits for running jobs or ctx.
func (r *Runner) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) execute(ctx context.Context, job Job) (err error) {
	ctx, cancel := context.WithTimeout(ctx, job.Timeout)
	defer cancel()

	startedAt := time.Now()
	log := r.logger.With("job", job.Name)
	log.DebugContext(ctx, "job started")
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, p)
		}
		if err != nil {
			log.ErrorContext(ctx, "job failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
			return
		}
		log.InfoContext(ctx, "job finished", "duration_ms", time.Since(startedAt).Milliseconds())
	}()
	return job.Run(ctx)
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
