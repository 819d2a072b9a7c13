// Package app wires repositories, the notification dispatcher and the use
// case services into one set shared by the CLI, the HTTP API and the jobs.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/notify"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/service"
)

type Services struct {
	Sprints       service.SprintService
	Projects      service.ProjectService
	Cards         service.CardService
	Todos         service.TodoService
	Users         service.UserService
	Notifications service.NotificationService
	Deadlines     service.DeadlineService
	Weekly        service.WeeklyService
	Dispatcher    *notify.Dispatcher
}

type Options struct {
	Dialect db.Dialect
	// Publisher receives every stored notification; nil disables push.
	Publisher notify.Publisher
	Clock     service.Clock
	Logger    *slog.Logger
	// LogUseCases adds an observer that logs every use case.
	LogUseCases bool
}

func New(database *sql.DB, o Options) *Services {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Dialect == "" {
		o.Dialect = db.DialectSQLite
	}
	var observers []service.UseCaseObserver
	if o.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(o.Logger))
	}

	conn := db.Wrap(database, o.Dialect)
	uow := db.NewUnitOfWork(database, o.Dialect)

	users := repository.NewSQLUserRepo(conn)
	sprints := repository.NewSQLSprintRepo(conn)
	projects := repository.NewSQLProjectRepo(conn)
	cards := repository.NewSQLCardRepo(conn)
	todos := repository.NewSQLTodoRepo(conn)
	logs := repository.NewSQLCardLogRepo(conn)
	notifications := repository.NewSQLNotificationRepo(conn)
	weekly := repository.NewSQLWeeklyConfigRepo(conn)

	dispatcher := notify.NewDispatcher(users, notifications, o.Publisher, o.Logger)
	fanout := service.NewFanout(dispatcher, notify.NewRecipients(users), o.Logger)

	return &Services{
		Sprints:       service.NewSprintService(sprints, uow, fanout, o.Clock, o.Logger, observers...),
		Projects:      service.NewProjectService(projects, uow, fanout, o.Clock, observers...),
		Cards:         service.NewCardService(cards, logs, uow, fanout, o.Clock, observers...),
		Todos:         service.NewTodoService(todos, uow, fanout, o.Clock, observers...),
		Users:         service.NewUserService(users, fanout, observers...),
		Notifications: service.NewNotificationService(notifications),
		Deadlines:     service.NewDeadlineService(cards, projects, notifications, fanout, o.Clock, o.Logger, observers...),
		Weekly:        service.NewWeeklyService(weekly, users, o.Clock, o.Logger, observers...),
		Dispatcher:    dispatcher,
	}
}
