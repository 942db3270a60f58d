package job

import (
	"strings"
	"time"
)

// NeverEnds is the sentinel employment end date meaning "still employed".
var NeverEnds = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Job is a position the user records time against, identified by a hashtag
// in calendar event text. The hashtag is unique within a user's job list.
type Job struct {
	Id        int
	Hashtag   string
	Name      string
	ShortName string
	// ContractedHours is the agreed weekly working time, in hours.
	ContractedHours    float64
	AnnualHolidayHours float64
	ProRataBankHoliday bool
	// EmploymentStart and EmploymentEnd bound the weeks that count toward
	// the flexi balance. Both are dates at midnight UTC; EmploymentEnd
	// defaults to NeverEnds.
	EmploymentStart time.Time
	EmploymentEnd   time.Time
	// FlexiOffsetMinutes is an optional carry-in seeding the flexi
	// accumulator, e.g. a balance brought over from a previous system.
	FlexiOffsetMinutes int
	// Timesheets maps the Monday of each week to that week's totals.
	// Owned exclusively by this job.
	Timesheets map[time.Time]*Timesheet
}

func NewJob(hashtag string) *Job {
	return &Job{
		Hashtag:       strings.ToLower(hashtag),
		EmploymentEnd: NeverEnds,
		Timesheets:    map[time.Time]*Timesheet{},
	}
}

// ContractedMinutes converts the weekly contracted hours to whole minutes.
func (j *Job) ContractedMinutes() int {
	return int(j.ContractedHours * 60)
}

// Timesheet holds one week's minutes for one job. Work, Holiday, Bank and
// Sick are accumulated from calendar events; Balance and Flexi are derived
// afterwards and never persisted.
type Timesheet struct {
	Work    int
	Holiday int
	Bank    int
	Sick    int
	Balance int
	Flexi   int
}

// Total is the sum of all four recorded buckets, in minutes.
func (t *Timesheet) Total() int {
	return t.Work + t.Holiday + t.Bank + t.Sick
}
