package calendar

import (
	"context"
	"iter"
	"time"
)

// EventSource supplies timed events from an external calendar.
//
// The returned sequence is finite, forward-only, and ordered by ascending
// start time. All-day events are excluded. Pagination is the implementation's
// concern: iteration may block while the next page is fetched, and a fetch
// failure is delivered as the error of the final pair. The sequence can only
// be restarted by calling Events again.
type EventSource interface {
	Events(ctx context.Context, from time.Time, to time.Time, calendarID string) iter.Seq2[Event, error]
}
