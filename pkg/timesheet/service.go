package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/caltime/caltime/internal/event_bus"
	"github.com/caltime/caltime/internal/utils"
	"github.com/caltime/caltime/pkg/calendar"
	"github.com/caltime/caltime/pkg/job"
	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
)

// JobWeek is one job's cell in a timesheet row.
type JobWeek struct {
	JobId          int
	Hashtag        string
	ShortName      string
	TotalMinutes   int
	BalanceMinutes int
	FlexiMinutes   int
}

// WeekSummary is one row of the timesheet view: a week with the per-job
// totals and the running flexi balances.
type WeekSummary struct {
	Week         time.Time
	Current      bool
	Jobs         []JobWeek
	TotalMinutes int
}

type Service interface {
	// GetTimesheet refreshes the current user's timesheets from the
	// calendar and returns one row per week of the user's view window.
	GetTimesheet(ctx context.Context) ([]WeekSummary, error)
	// Refresh re-derives and stores the current user's timesheets without
	// building the view.
	Refresh(ctx context.Context) error
}

type ServiceImpl struct {
	source  calendar.EventSource
	jobRepo job.Repository
	clock   utils.Clock
}

func NewService(source calendar.EventSource, jobRepo job.Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{
		source:  source,
		jobRepo: jobRepo,
		clock:   &utils.SystemClock{},
	}
	event_bus.SubscribeTyped[event_bus.JobUpdated](
		eventBus,
		event_bus.JobUpdatedEvent,
		func(e event_bus.EventT[event_bus.JobUpdated]) error {
			log.Debugf("job %d updated, re-deriving timesheets", e.Data.JobId)
			return service.Refresh(e.Context())
		},
	)
	return service
}

func (s *ServiceImpl) GetTimesheet(ctx context.Context) ([]WeekSummary, error) {
	currentUser, jobs, fromWeek, toWeek, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}

	for _, j := range jobs {
		CalculateFlexi(j)
	}

	currentWeek := s.currentWeek(currentUser)
	var rows []WeekSummary
	for week := fromWeek; week.Before(toWeek); week = week.AddDate(0, 0, 7) {
		row := WeekSummary{Week: week, Current: week.Equal(currentWeek)}
		for _, j := range jobs {
			sheet := j.Timesheets[week]
			if sheet == nil {
				sheet = &job.Timesheet{}
			}
			row.Jobs = append(row.Jobs, JobWeek{
				JobId:          j.Id,
				Hashtag:        j.Hashtag,
				ShortName:      j.ShortName,
				TotalMinutes:   sheet.Total(),
				BalanceMinutes: sheet.Total() - j.ContractedMinutes(),
				FlexiMinutes:   sheet.Flexi,
			})
			row.TotalMinutes += sheet.Total()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ServiceImpl) Refresh(ctx context.Context) error {
	_, _, _, _, err := s.refresh(ctx)
	return err
}

// refresh pulls the user's view window from the calendar, rebuilds the
// timesheets and persists them. Returns the loaded jobs and the window.
func (s *ServiceImpl) refresh(ctx context.Context) (user.User, []*job.Job, time.Time, time.Time, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return user.User{}, nil, time.Time{}, time.Time{}, fmt.Errorf("failed to get current user: %w", err)
	}

	jobs, err := s.jobRepo.GetJobs(ctx, currentUser.Id)
	if err != nil {
		return user.User{}, nil, time.Time{}, time.Time{}, fmt.Errorf("failed to load jobs: %w", err)
	}

	currentWeek := s.currentWeek(currentUser)
	fromWeek := currentWeek.AddDate(0, 0, -7*currentUser.Settings.ViewPastWeeks)
	toWeek := currentWeek.AddDate(0, 0, 7*(currentUser.Settings.ViewFutureWeeks+1))

	location := s.userLocation(currentUser)
	fromInstant := asLocalMidnight(fromWeek, location)
	toInstant := asLocalMidnight(toWeek, location)

	events := s.source.Events(ctx, fromInstant, toInstant, currentUser.Settings.CalendarId)
	if err := UpdateTimesheets(fromWeek, toWeek, jobs, events); err != nil {
		return user.User{}, nil, time.Time{}, time.Time{}, err
	}

	if err := s.jobRepo.StoreTimesheets(ctx, currentUser.Id, jobs); err != nil {
		return user.User{}, nil, time.Time{}, time.Time{}, fmt.Errorf("failed to store timesheets: %w", err)
	}
	log.Debugf("refreshed timesheets for user %d: %d jobs, weeks %s to %s",
		currentUser.Id, len(jobs), fromWeek.Format(time.DateOnly), toWeek.Format(time.DateOnly))

	return currentUser, jobs, fromWeek, toWeek, nil
}

func (s *ServiceImpl) currentWeek(u user.User) time.Time {
	return WeekStart(s.clock.Now().In(s.userLocation(u)))
}

func (s *ServiceImpl) userLocation(u user.User) *time.Location {
	location, err := time.LoadLocation(u.Settings.Timezone)
	if err != nil {
		log.Warnf("invalid timezone %q for user %d, falling back to UTC", u.Settings.Timezone, u.Id)
		return time.UTC
	}
	return location
}

func asLocalMidnight(date time.Time, location *time.Location) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
