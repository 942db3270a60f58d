package sync

import (
	"context"
	"errors"

	"github.com/caltime/caltime/pkg/google"
	"github.com/caltime/caltime/pkg/timesheet"
	"github.com/caltime/caltime/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Refresher periodically re-derives the timesheets of every user, so the
// flexi balance stays current without anyone opening the timesheet view.
type Refresher struct {
	cron       *cron.Cron
	users      user.Service
	timesheets timesheet.Service
}

func NewRefresher(schedule string, users user.Service, timesheets timesheet.Service) (*Refresher, error) {
	refresher := &Refresher{
		cron:       cron.New(),
		users:      users,
		timesheets: timesheets,
	}
	if _, err := refresher.cron.AddFunc(schedule, refresher.refreshAll); err != nil {
		return nil, err
	}
	return refresher, nil
}

func (r *Refresher) Start() {
	log.Info("Starting background timesheet refresh")
	r.cron.Start()
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refreshAll() {
	ctx := context.Background()
	users, err := r.users.GetAllUsers(ctx)
	if err != nil {
		log.Errorf("background refresh: failed to list users: %v", err)
		return
	}

	for _, u := range users {
		userCtx := user.WithUser(ctx, u)
		if err := r.timesheets.Refresh(userCtx); err != nil {
			if errors.Is(err, google.ErrUnauthenticated) {
				log.Debugf("background refresh: user %d has no calendar connected, skipping", u.Id)
				continue
			}
			log.Errorf("background refresh: failed for user %d: %v", u.Id, err)
			continue
		}
		log.Debugf("background refresh: refreshed timesheets for user %d", u.Id)
	}
}
