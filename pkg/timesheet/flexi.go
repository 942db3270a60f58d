package timesheet

import (
	"sort"
	"time"

	"github.com/caltime/caltime/pkg/job"
)

// CalculateFlexi walks the job's timesheet weeks in ascending date order and
// fills in the derived Balance and Flexi fields. The running accumulator is
// seeded with the job's carry-in offset. Weeks outside the employment window
// get zero for both fields and leave the accumulator untouched, so the
// running total continues across them as if they were not there.
//
// The whole history is recomputed on every call; any week can change
// retroactively when the calendar is edited.
func CalculateFlexi(j *job.Job) {
	weeks := make([]time.Time, 0, len(j.Timesheets))
	for week := range j.Timesheets {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(a, b int) bool { return weeks[a].Before(weeks[b]) })

	flexi := j.FlexiOffsetMinutes
	for _, week := range weeks {
		sheet := j.Timesheets[week]
		if !week.Before(j.EmploymentStart) && week.Before(j.EmploymentEnd) {
			sheet.Balance = sheet.Total() - j.ContractedMinutes()
			flexi += sheet.Balance
			sheet.Flexi = flexi
		} else {
			sheet.Balance = 0
			sheet.Flexi = 0
		}
	}
}
