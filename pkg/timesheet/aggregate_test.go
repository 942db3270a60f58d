package timesheet

import (
	"testing"
	"time"

	"github.com/caltime/caltime/pkg/calendar"
	"github.com/caltime/caltime/pkg/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func newTestJob(hashtag string) *job.Job {
	j := job.NewJob(hashtag)
	j.EmploymentStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	return j
}

func timedEvent(title, description string, start time.Time, minutes int) calendar.Event {
	return calendar.NewEvent(title, description, "", start, start.Add(time.Duration(minutes)*time.Minute))
}

func TestUpdateTimesheets(t *testing.T) {
	weekAfter := monday.AddDate(0, 0, 7)

	t.Run("should credit a single-tag event fully to the one matched job", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		life := newTestJob("#life")
		events := []calendar.Event{timedEvent("design #hct", "", monday.Add(9*time.Hour), 120)}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct, life}, eventSeq(events))

		// then
		require.NoError(t, err)
		assert.Equal(t, 120, hct.Timesheets[monday].Work)
		assert.Equal(t, 0, life.Timesheets[monday].Work)
	})

	t.Run("should split a multi-job event evenly with floor division", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		life := newTestJob("#life")
		events := []calendar.Event{timedEvent("sync", "#hct #life", monday.Add(9*time.Hour), 90)}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct, life}, eventSeq(events))

		// then
		require.NoError(t, err)
		assert.Equal(t, 45, hct.Timesheets[monday].Work)
		assert.Equal(t, 45, life.Timesheets[monday].Work)
	})

	t.Run("should drop remainder minutes rather than redistribute them", func(t *testing.T) {
		// given 100 minutes over three jobs
		jobs := []*job.Job{newTestJob("#a"), newTestJob("#b"), newTestJob("#c")}
		events := []calendar.Event{timedEvent("all hands", "#a #b #c", monday.Add(9*time.Hour), 100)}

		// when
		err := UpdateTimesheets(monday, weekAfter, jobs, eventSeq(events))

		// then 33 each, 1 minute lost
		require.NoError(t, err)
		total := 0
		for _, j := range jobs {
			assert.Equal(t, 33, j.Timesheets[monday].Work)
			total += j.Timesheets[monday].Work
		}
		assert.LessOrEqual(t, 100-total, len(jobs)-1)
	})

	t.Run("should count holiday in full for every matched job", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		life := newTestJob("#life")
		events := []calendar.Event{timedEvent("day off #hct #life #holiday", "", monday.Add(9*time.Hour), 450)}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct, life}, eventSeq(events))

		// then
		require.NoError(t, err)
		assert.Equal(t, 450, hct.Timesheets[monday].Holiday)
		assert.Equal(t, 450, life.Timesheets[monday].Holiday)
		assert.Equal(t, 0, hct.Timesheets[monday].Work)
	})

	t.Run("should apply category precedence holiday over bank over sick", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		events := []calendar.Event{
			timedEvent("off #hct #holiday #bank", "", monday.Add(9*time.Hour), 60),
			timedEvent("off #hct #bank #sick", "", monday.Add(11*time.Hour), 30),
			timedEvent("off #hct #sick", "", monday.Add(13*time.Hour), 15),
		}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct}, eventSeq(events))

		// then
		require.NoError(t, err)
		assert.Equal(t, 60, hct.Timesheets[monday].Holiday)
		assert.Equal(t, 30, hct.Timesheets[monday].Bank)
		assert.Equal(t, 15, hct.Timesheets[monday].Sick)
		assert.Equal(t, 0, hct.Timesheets[monday].Work)
	})

	t.Run("should skip events matching no job hashtag", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		events := []calendar.Event{timedEvent("dentist #personal", "", monday.Add(9*time.Hour), 60)}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct}, eventSeq(events))

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, hct.Timesheets[monday].Total())
	})

	t.Run("should create zero timesheets for every week in the range", func(t *testing.T) {
		// given a three week range with events only in the middle week
		hct := newTestJob("#hct")
		threeWeeksLater := monday.AddDate(0, 0, 21)
		events := []calendar.Event{timedEvent("work #hct", "", weekAfter.Add(9*time.Hour), 60)}

		// when
		err := UpdateTimesheets(monday, threeWeeksLater, []*job.Job{hct}, eventSeq(events))

		// then
		require.NoError(t, err)
		require.Len(t, hct.Timesheets, 3)
		assert.Equal(t, 0, hct.Timesheets[monday].Total())
		assert.Equal(t, 60, hct.Timesheets[weekAfter].Total())
		assert.Equal(t, 0, hct.Timesheets[monday.AddDate(0, 0, 14)].Total())
	})

	t.Run("should overwrite a week on re-processing instead of accumulating", func(t *testing.T) {
		// given a first pass with a long event
		hct := newTestJob("#hct")
		first := []calendar.Event{timedEvent("work #hct", "", monday.Add(9*time.Hour), 480)}
		require.NoError(t, UpdateTimesheets(monday, weekAfter, []*job.Job{hct}, eventSeq(first)))
		require.Equal(t, 480, hct.Timesheets[monday].Work)

		// when the calendar now says something shorter
		second := []calendar.Event{timedEvent("work #hct", "", monday.Add(9*time.Hour), 240)}
		require.NoError(t, UpdateTimesheets(monday, weekAfter, []*job.Job{hct}, eventSeq(second)))

		// then
		assert.Equal(t, 240, hct.Timesheets[monday].Work)
	})

	t.Run("should count a reconciled buffer event toward the inherited job", func(t *testing.T) {
		// given travel (30 min) directly before a tagged on-site meeting
		life := newTestJob("#life")
		start := monday.Add(9 * time.Hour)
		events := []calendar.Event{
			calendar.NewEvent("travel", "reclaim", "", start, start.Add(30*time.Minute)),
			calendar.NewEvent("meeting #life", "", "Office", start.Add(30*time.Minute), start.Add(90*time.Minute)),
		}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{life}, eventSeq(events))

		// then 30 buffer + 60 meeting
		require.NoError(t, err)
		assert.Equal(t, 90, life.Timesheets[monday].Work)
	})

	t.Run("should propagate a source error", func(t *testing.T) {
		// given
		hct := newTestJob("#hct")
		failing := func(yield func(calendar.Event, error) bool) {
			yield(calendar.Event{}, assert.AnError)
		}

		// when
		err := UpdateTimesheets(monday, weekAfter, []*job.Job{hct}, failing)

		// then
		assert.ErrorIs(t, err, assert.AnError)
	})
}
