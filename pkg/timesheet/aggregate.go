package timesheet

import (
	"fmt"
	"iter"
	"time"

	"github.com/caltime/caltime/pkg/calendar"
	"github.com/caltime/caltime/pkg/job"
)

// UpdateTimesheets rebuilds the weekly timesheets of the given jobs from an
// event sequence covering [from, to). Every Monday week in the range gets a
// fresh zero timesheet per job, so re-processing a week overwrites rather
// than appends and downstream consumers never see a missing week.
//
// Per event, the matched jobs are those whose hashtag appears in the event's
// tags. Category tags take strict precedence: #holiday, then #bank, then
// #sick, each counted in full for every matched job. Anything else is work
// time, split evenly across the matched jobs with integer division; the
// remainder minutes are dropped, not redistributed.
func UpdateTimesheets(from, to time.Time, jobs []*job.Job, events iter.Seq2[calendar.Event, error]) error {
	jobsByHashtag := make(map[string]*job.Job, len(jobs))
	for _, j := range jobs {
		if j.Timesheets == nil {
			j.Timesheets = map[time.Time]*job.Timesheet{}
		}
		jobsByHashtag[j.Hashtag] = j
	}

	for week := WeekStart(from); week.Before(to); week = week.AddDate(0, 0, 7) {
		for _, j := range jobs {
			j.Timesheets[week] = &job.Timesheet{}
		}
	}

	for batch, err := range groupByWeek(events) {
		if err != nil {
			return fmt.Errorf("failed to read calendar events: %w", err)
		}
		// An event on the boundary can belong to a week outside the
		// pre-filled range; make sure its week exists too.
		for _, j := range jobs {
			if _, ok := j.Timesheets[batch.week]; !ok {
				j.Timesheets[batch.week] = &job.Timesheet{}
			}
		}

		reconcileBufferEvents(batch.events)

		for i := range batch.events {
			event := &batch.events[i]
			tags := event.Hashtags()
			var matched []*job.Job
			for hashtag, j := range jobsByHashtag {
				if tags[hashtag] {
					matched = append(matched, j)
				}
			}
			if len(matched) == 0 {
				continue
			}

			duration := event.Duration()
			for _, j := range matched {
				sheet := j.Timesheets[batch.week]
				switch {
				case tags["#holiday"]:
					sheet.Holiday += duration
				case tags["#bank"]:
					sheet.Bank += duration
				case tags["#sick"]:
					sheet.Sick += duration
				default:
					sheet.Work += duration / len(matched)
				}
			}
		}
	}
	return nil
}
