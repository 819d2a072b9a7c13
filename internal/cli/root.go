package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/service"
	"github.com/spf13/cobra"
)

// JobRunner runs the scheduled sweeps on demand.
type JobRunner interface {
	Names() []string
	RunOnce(ctx context.Context, name string) error
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sprints       service.SprintService
	Users         service.UserService
	Notifications service.NotificationService
	Weekly        service.WeeklyService
	Jobs          JobRunner

	Clock service.Clock

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title, affirmative string) (bool, error)
	// Serve runs the HTTP API and the scheduler until ctx is done.
	Serve func(ctx context.Context) error
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title, affirmative string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, affirmative)
	}
	return confirmPrompt(title, affirmative)
}

// NewRootCmd creates the top-level "sprintdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sprintdesk",
		Short:         "Sprint board backend: rollover, notifications and weekly priorities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read before cobra parses; declared here so it is accepted and documented.
	root.PersistentFlags().String("config", "", "path to the YAML config file")

	root.AddCommand(
		newServeCmd(app),
		newSprintCmd(app),
		newSweepCmd(app),
		newWeekCmd(app),
		newNotificationsCmd(app),
		newInboxCmd(app),
		newUserCmd(app),
	)

	return root
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the notification stream and the scheduled sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("serve is not configured")
			}
			return app.Serve(cmd.Context())
		},
	}
}
