package app

import (
	"net/http"

	"github.com/caltime/caltime/internal/config"
	"github.com/caltime/caltime/internal/event_bus"
	"github.com/caltime/caltime/internal/sync"
	"github.com/caltime/caltime/pkg/bankholiday"
	"github.com/caltime/caltime/pkg/google"
	"github.com/caltime/caltime/pkg/holiday"
	"github.com/caltime/caltime/pkg/job"
	"github.com/caltime/caltime/pkg/timesheet"
	"github.com/caltime/caltime/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler
	EventSource   *google.EventSource

	JobRepo    job.Repository
	JobService job.Service
	JobHandler *job.Handler

	TimesheetService timesheet.Service
	TimesheetHandler *timesheet.Handler

	BankHolidayClient bankholiday.Client
	HolidayService    holiday.Service
	HolidayHandler    *holiday.Handler

	Refresher *sync.Refresher
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)
	deps.EventSource = google.NewEventSource(deps.GoogleAuth)

	deps.JobRepo = job.NewRepository(db)
	deps.JobService = job.NewService(deps.JobRepo, deps.EventBus)
	deps.JobHandler = job.NewHandler(deps.JobService)

	deps.TimesheetService = timesheet.NewService(deps.EventSource, deps.JobRepo, deps.EventBus)
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	deps.BankHolidayClient = bankholiday.NewHTTPClient(bankholiday.DefaultURL, http.DefaultClient)
	deps.HolidayService = holiday.NewService(deps.EventSource, deps.JobRepo, deps.BankHolidayClient)
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayService)

	refresher, err := sync.NewRefresher(cfg.Sync.Schedule, deps.UserService, deps.TimesheetService)
	if err != nil {
		return nil, err
	}
	deps.Refresher = refresher

	return deps, nil
}
