package google

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/caltime/caltime/pkg/calendar"
	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

const eventsPageSize = 250

// EventSource reads a user's Google Calendar as a lazy event sequence.
type EventSource struct {
	auth *GoogleAuth
}

func NewEventSource(auth *GoogleAuth) *EventSource {
	return &EventSource{auth: auth}
}

// Events pages through the calendar between from and to. Recurring
// events come pre-expanded and sorted by start time; all-day events
// carry no start datetime and are skipped.
func (s *EventSource) Events(ctx context.Context, from time.Time, to time.Time, calendarId string) iter.Seq2[calendar.Event, error] {
	return func(yield func(calendar.Event, error) bool) {
		userId, err := user.CurrentId(ctx)
		if err != nil {
			yield(calendar.Event{}, fmt.Errorf("failed to get current user: %w", err))
			return
		}
		service, err := s.auth.calendarService(ctx, userId)
		if err != nil {
			yield(calendar.Event{}, err)
			return
		}

		pageToken := ""
		for {
			call := service.Events.List(calendarId).
				TimeMin(from.Format(time.RFC3339)).
				TimeMax(to.Format(time.RFC3339)).
				SingleEvents(true).
				OrderBy("startTime").
				MaxResults(eventsPageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			result, err := call.Do()
			if err != nil {
				yield(calendar.Event{}, fmt.Errorf("unable to retrieve events from Google Calendar: %w", err))
				return
			}

			for _, item := range result.Items {
				event, ok := toEvent(item)
				if !ok {
					continue
				}
				if !yield(event, nil) {
					return
				}
			}

			pageToken = result.NextPageToken
			if pageToken == "" {
				return
			}
		}
	}
}

func toEvent(item *gcal.Event) (calendar.Event, bool) {
	if item.Start == nil || item.Start.DateTime == "" {
		log.Tracef("skipping all-day event: %s", item.Summary)
		return calendar.Event{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		log.Warnf("skipping event %q with malformed start %q", item.Summary, item.Start.DateTime)
		return calendar.Event{}, false
	}
	finish, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		log.Warnf("skipping event %q with malformed end %q", item.Summary, item.End.DateTime)
		return calendar.Event{}, false
	}
	return calendar.NewEvent(item.Summary, item.Description, item.Location, start, finish), true
}
