package google

import (
	"context"
	"fmt"

	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type CalendarItem struct {
	ID       string
	Summary  string
	Timezone string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{auth: auth}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.auth.calendarService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var items []CalendarItem
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{
			ID:       cal.Id,
			Summary:  cal.Summary,
			Timezone: cal.TimeZone,
		})
	}
	return items, nil
}

// calendarService builds an authenticated Calendar API client for the user.
func (g *GoogleAuth) calendarService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := g.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
