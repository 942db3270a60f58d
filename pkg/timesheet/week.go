package timesheet

import (
	"iter"
	"time"

	"github.com/caltime/caltime/pkg/calendar"
)

// WeekStart returns the Monday of the week containing t, as a date at
// midnight UTC. The local date of t is used, so an event keeps the week of
// its own timezone.
func WeekStart(t time.Time) time.Time {
	year, month, day := t.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -daysSinceMonday)
}

type weekBatch struct {
	week   time.Time
	events []calendar.Event
}

// groupByWeek partitions an event sequence into contiguous runs sharing the
// same Monday week key, preserving order within each run. The grouping is
// lazy: a batch is yielded as soon as the first event of the next week is
// seen. Events must arrive sorted by ascending start time; out-of-order
// input produces fragmented groups.
func groupByWeek(events iter.Seq2[calendar.Event, error]) iter.Seq2[weekBatch, error] {
	return func(yield func(weekBatch, error) bool) {
		var current weekBatch
		for event, err := range events {
			if err != nil {
				yield(weekBatch{}, err)
				return
			}
			week := WeekStart(event.Start)
			if len(current.events) > 0 && !week.Equal(current.week) {
				if !yield(current, nil) {
					return
				}
				current = weekBatch{}
			}
			if len(current.events) == 0 {
				current.week = week
			}
			current.events = append(current.events, event)
		}
		if len(current.events) > 0 {
			yield(current, nil)
		}
	}
}
