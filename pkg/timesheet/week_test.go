package timesheet

import (
	"iter"
	"testing"
	"time"

	"github.com/caltime/caltime/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	t.Run("should return the Monday of the week", func(t *testing.T) {
		// given a Thursday
		thursday := time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC)

		// when
		week := WeekStart(thursday)

		// then
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), week)
	})

	t.Run("should map a Monday to itself", func(t *testing.T) {
		monday := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), WeekStart(monday))
	})

	t.Run("should map a Sunday to the previous Monday", func(t *testing.T) {
		sunday := time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), WeekStart(sunday))
	})

	t.Run("should use the event's own local date", func(t *testing.T) {
		// given late Sunday evening in a +02:00 zone: already Monday in UTC,
		// but still Sunday locally
		location := time.FixedZone("east", 2*60*60)
		lateSunday := time.Date(2024, time.March, 10, 23, 30, 0, 0, location)

		// when / then
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), WeekStart(lateSunday))
	})
}

func eventSeq(events []calendar.Event) iter.Seq2[calendar.Event, error] {
	return func(yield func(calendar.Event, error) bool) {
		for _, event := range events {
			if !yield(event, nil) {
				return
			}
		}
	}
}

func TestGroupByWeek(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
	}
	makeEvent := func(day, hour int) calendar.Event {
		return calendar.NewEvent("e", "", "", at(day, hour), at(day, hour+1))
	}

	t.Run("should partition sorted events into Monday-aligned runs", func(t *testing.T) {
		// given events across three weeks of March 2024
		events := []calendar.Event{
			makeEvent(4, 9), makeEvent(6, 10), makeEvent(10, 9), // week of Mar 4
			makeEvent(11, 9), // week of Mar 11
			makeEvent(20, 9), makeEvent(22, 9), // week of Mar 18
		}

		// when
		var batches []weekBatch
		for batch, err := range groupByWeek(eventSeq(events)) {
			require.NoError(t, err)
			batches = append(batches, batch)
		}

		// then
		require.Len(t, batches, 3)
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), batches[0].week)
		assert.Len(t, batches[0].events, 3)
		assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), batches[1].week)
		assert.Len(t, batches[1].events, 1)
		assert.Equal(t, time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC), batches[2].week)
		assert.Len(t, batches[2].events, 2)

		// concatenating the groups reproduces the input exactly
		var flattened []calendar.Event
		for _, batch := range batches {
			for _, event := range batch.events {
				assert.Equal(t, batch.week, WeekStart(event.Start))
			}
			flattened = append(flattened, batch.events...)
		}
		assert.Equal(t, events, flattened)
	})

	t.Run("should yield nothing for an empty sequence", func(t *testing.T) {
		count := 0
		for range groupByWeek(eventSeq(nil)) {
			count++
		}
		assert.Equal(t, 0, count)
	})

	t.Run("should surface a source error and stop", func(t *testing.T) {
		// given
		sourceErr := assert.AnError
		failing := func(yield func(calendar.Event, error) bool) {
			if !yield(makeEvent(4, 9), nil) {
				return
			}
			yield(calendar.Event{}, sourceErr)
		}

		// when
		var lastErr error
		for _, err := range groupByWeek(failing) {
			lastErr = err
		}

		// then
		assert.ErrorIs(t, lastErr, sourceErr)
	})

	t.Run("should support early termination", func(t *testing.T) {
		// given
		events := []calendar.Event{makeEvent(4, 9), makeEvent(11, 9), makeEvent(18, 9)}

		// when only the first batch is consumed
		count := 0
		for range groupByWeek(eventSeq(events)) {
			count++
			break
		}

		// then
		assert.Equal(t, 1, count)
	})
}
