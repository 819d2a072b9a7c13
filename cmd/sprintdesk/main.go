package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/app"
	"github.com/alexanderramin/sprintdesk/internal/cli"
	"github.com/alexanderramin/sprintdesk/internal/config"
	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/httpapi"
	"github.com/alexanderramin/sprintdesk/internal/jobs"
	"github.com/alexanderramin/sprintdesk/internal/logger"
	"github.com/alexanderramin/sprintdesk/internal/push"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, closer := logger.Init(cfg.Log)
	defer closer.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := func() time.Time { return time.Now().In(loc) }

	// Open database
	database, err := db.Open(cfg.Dialect(), cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	hub := push.NewHub(cfg.HTTP.PushBuffer, log)
	defer hub.Close()

	svc := app.New(database, app.Options{
		Dialect:     cfg.Dialect(),
		Publisher:   hub,
		Clock:       clock,
		Logger:      log,
		LogUseCases: true,
	})

	runner := jobs.NewRunner(loc, log)
	specs := jobs.Specs{
		DeadlineScan:    cfg.Jobs.DeadlineScan,
		SprintRollover:  cfg.Jobs.SprintRollover,
		WeeklyAutoClose: cfg.Jobs.WeeklyAutoClose,
	}
	if err := jobs.Register(runner, jobs.Standard(specs, svc.Sprints, svc.Deadlines, svc.Weekly, log)); err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}

	a := &cli.App{
		Sprints:       svc.Sprints,
		Users:         svc.Users,
		Notifications: svc.Notifications,
		Weekly:        svc.Weekly,
		Jobs:          runner,
		Clock:         clock,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	a.Serve = func(ctx context.Context) error {
		if cfg.HTTP.JWTSecret == "" {
			return errors.New("http.jwt_secret (SPRINTDESK_JWT_SECRET) is required to serve")
		}
		router := httpapi.NewRouter(httpapi.Deps{
			Sprints:       svc.Sprints,
			Cards:         svc.Cards,
			Todos:         svc.Todos,
			Users:         svc.Users,
			Notifications: svc.Notifications,
			Weekly:        svc.Weekly,
			Push:          hub,
			DB:            database,
			Clock:         clock,
			Logger:        log,
		}, httpapi.Options{
			JWTSecret:   []byte(cfg.HTTP.JWTSecret),
			CORSOrigins: cfg.HTTP.CORSOrigins,
		})

		if cfg.Jobs.Enabled {
			runner.Start()
			defer stopRunner(runner, log)
		}
		return httpapi.NewServer(cfg.HTTP.Addr, router, log).Run(ctx)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// configPath picks --config out of args before cobra parses them; the
// config decides which database the commands run against.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("sprintdesk", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func stopRunner(r *jobs.Runner, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.Stop(ctx); err != nil {
		log.Warn("scheduler did not stop cleanly", "error", err)
	}
}
